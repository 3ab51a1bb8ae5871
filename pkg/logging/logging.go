package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Local environments get a human-readable
// development logger at debug level, everything else gets production JSON.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "local" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProductionConfig().Build()
}
