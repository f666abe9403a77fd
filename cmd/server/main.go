package main

import (
	"github.com/yppgo/patentgraph/internal/server"
	"github.com/yppgo/patentgraph/internal/util"
	"github.com/yppgo/patentgraph/pkg/logger"
	"github.com/yppgo/patentgraph/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleBackend := console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	})
	logger.Init(consoleBackend)

	server.Init()
}
