package cli

import (
	"go.uber.org/zap"
)

// NewLogger returns a development logger when verbose, otherwise a console
// logger on stderr that only reports warnings and errors.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
