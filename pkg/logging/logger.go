package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Local/dev environments get the development
// encoder; anything else gets production JSON output.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "local", "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
