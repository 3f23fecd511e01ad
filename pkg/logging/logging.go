package logging

import (
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
)

// New builds the application logger. Local environments get the
// human-readable development encoder, everything else logs JSON.
func New(appName, env string) (ectologger.Logger, error) {
	var zapLogger *zap.Logger
	var err error
	if env == "local" {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	logger := zapadapter.NewZapEctoLogger(zapLogger, nil)
	return logger.WithFields(map[string]any{
		"app": appName,
		"env": env,
	}), nil
}
