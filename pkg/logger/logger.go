package logger

// Backend is a logging sink. The toolkit ships a console backend; tests
// may register capturing backends.
type Backend interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []Backend

// Init installs the logging backends. Must be called before any logging
// function; calls before Init are dropped.
func Init(b ...Backend) {
	backends = b
}

// Debug writes a message at DEBUG level to all backends.
func Debug(message string, keyvals ...any) {
	for _, b := range backends {
		b.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level to all backends.
func Info(message string, keyvals ...any) {
	for _, b := range backends {
		b.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level to all backends.
func Warn(message string, keyvals ...any) {
	for _, b := range backends {
		b.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level to all backends.
func Error(message string, keyvals ...any) {
	for _, b := range backends {
		b.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	for _, b := range backends {
		b.Fatal(message, keyvals...)
	}
}
