package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yppgo/patentgraph/internal/queue"
	mid "github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/internal/storage"
	"github.com/yppgo/patentgraph/internal/util"
	"github.com/yppgo/patentgraph/pkg/logger"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"

	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphStore, err := neo4jstore.NewStore(ctx, neo4jstore.NewStoreParams{
		URI:      util.GetEnv("NEO4J_URI"),
		User:     util.GetEnv("NEO4J_USER"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
	})
	if err != nil {
		logger.Fatal("Failed to connect to neo4j", "err", err)
	}
	defer graphStore.Close(context.Background())

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}

	if err := queue.SetupQueues(ch, queue.QueueNames); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	ontologyPath := util.GetEnvString("ONTOLOGY_PATH", "causal_graph.json")

	e.Use(mid.AppContextMiddleware(ch, s3, graphStore, ontologyPath))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
