// Package logger provides the process-wide structured logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
)

// Init builds the global logger for the given environment. Production gets
// JSON output at info level; anything else gets console output at debug.
// Calling Init again replaces the logger, which tests rely on.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	sugar = base.Sugar()
}

// Get returns the global sugared logger, initializing a development logger
// on first use if Init was never called.
func Get() *zap.SugaredLogger {
	mu.Lock()
	s := sugar
	mu.Unlock()
	if s == nil {
		Init("development")
		return Get()
	}
	return s
}

// Sync flushes buffered entries. Call before exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
