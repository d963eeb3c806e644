package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide sugared logger. Release mode logs JSON at
// info level; anything else gets the human-readable development config.
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if mode == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
