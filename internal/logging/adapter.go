package logging

import (
	"fmt"
	"log/slog"
)

// PrintfAdapter adapts an slog.Logger to printf-style logging interfaces,
// in particular the Logger interface the resty HTTP client expects.
type PrintfAdapter struct {
	logger *slog.Logger
}

// NewPrintfAdapter creates a PrintfAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewPrintfAdapter(logger *slog.Logger) *PrintfAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrintfAdapter{logger: logger}
}

// Errorf logs a formatted message at error level.
func (a *PrintfAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a formatted message at warn level.
func (a *PrintfAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a formatted message at debug level.
func (a *PrintfAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// Logger returns the underlying slog.Logger for direct access when needed.
func (a *PrintfAdapter) Logger() *slog.Logger {
	return a.logger
}
