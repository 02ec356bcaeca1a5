package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process wide logger. It is a no-op until InitLogger runs so
// packages can log from tests without setup.
var Logger = zap.NewNop()

// InitLogger builds a production JSON logger at the given level
// (debug, info, warn, error). Unknown levels fall back to info.
func InitLogger(level string) error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger
	zap.ReplaceGlobals(logger)
	return nil
}

// Named returns a child of Logger for one component.
func Named(component string) *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger.Named(component)
}
