package logging

import (
	"go.uber.org/zap"
)

// Logger is a no-op until Init runs, so library code can log unconditionally.
var Logger = zap.NewNop().Sugar()

func Init(verbose bool) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = logger.Sugar()
}
