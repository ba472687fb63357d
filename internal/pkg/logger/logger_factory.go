package logger

import (
	"fmt"
	"sync"

	"github.com/bensternthal/basket/internal/pkg/config"
)

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the singleton logger.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the initialized logger instance.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(c *config.LoggerSettings) (Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch c.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(c.LogLevel), nil
	case config.LogTypeFile:
		return NewFileLogger(c.LogLevel, c.FilePath, c.MaxSize, c.MaxBackups, c.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}
