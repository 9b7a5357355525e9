// Package logger exposes the process-wide structured logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once  sync.Once
	sugar *zap.SugaredLogger
)

// Init sets up the global logger. "production" selects the JSON encoder;
// anything else gets the console encoder with colored levels.
func Init(env string) {
	once.Do(func() {
		var (
			base *zap.Logger
			err  error
		)
		switch env {
		case "production":
			base, err = zap.NewProduction()
		default:
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// when Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Call before exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
