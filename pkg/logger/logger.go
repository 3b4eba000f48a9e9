package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// NOOPLogger discards everything. Used as the default until a real logger is
// configured, and in tests.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a JSON production logger, or a human-readable development logger
// when appEnv is "local".
func New(appEnv string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if appEnv == "local" {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l.Sugar().With("app_env", appEnv), nil
}
