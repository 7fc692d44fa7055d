// Package logger holds the process-wide logger shared by the SkillSwap
// backend packages.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global SugaredLogger. It is a no-op until Initialize runs,
// so repository and service code can log safely in tests without setup.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize replaces Log with a production JSON logger at the given
// level. Timestamps are emitted in ISO 8601.
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar()
	return nil
}
