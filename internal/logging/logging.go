// Package logging builds the zap logger shared by every entry point.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a JSON logger in production and a console logger otherwise.
func New(level string, production bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg.Level = lvl

	return cfg.Build()
}
