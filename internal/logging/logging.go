// Package logging builds the zap logger used by waveform models.
package logging

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/config"
	"go.uber.org/zap"
)

// New builds a logger from cfg. An empty level means info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = level
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
