package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleBackend writes log records to stderr using charmbracelet/log.
type ConsoleBackend struct {
	logger *log.Logger
}

// ConsoleBackendParams configures a ConsoleBackend.
type ConsoleBackendParams struct {
	Debug bool
}

// NewConsoleBackend creates a console backend. When Debug is set the
// backend also emits DEBUG records.
func NewConsoleBackend(params ConsoleBackendParams) *ConsoleBackend {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	return &ConsoleBackend{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		}),
	}
}

// Debug writes a message at DEBUG level.
func (c *ConsoleBackend) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

// Info writes a message at INFO level.
func (c *ConsoleBackend) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func (c *ConsoleBackend) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func (c *ConsoleBackend) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

// Fatal writes a message at FATAL level and terminates the program.
func (c *ConsoleBackend) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
