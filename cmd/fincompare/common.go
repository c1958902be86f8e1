package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	drepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/repository"
	"FinCompare/internal/service/fmp"
	"FinCompare/internal/usecase"
	"FinCompare/pkg/config"
	applogger "FinCompare/pkg/logger"
	"FinCompare/pkg/metrics"

	"github.com/rs/zerolog"
)

// loadConfig reads the config file when present and falls back to defaults
// plus environment overrides otherwise.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(*configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg, cfg.Validate()
	}
	return config.LoadWithEnv(*configPath)
}

func newProvider(cfg *config.Config) drepo.RatioProvider {
	return fmp.New(fmp.Config{
		BaseURL:    cfg.Provider.BaseURL,
		APIKey:     cfg.Provider.APIKey,
		Timeout:    cfg.Provider.Timeout,
		RatePerSec: cfg.Provider.RatePerSec,
		Burst:      cfg.Provider.Burst,
	})
}

func newComparisonService(p drepo.RatioSource) *usecase.ComparisonService {
	l := applogger.NewWithWriter(os.Stderr, zerolog.ErrorLevel)
	return usecase.NewComparisonService(p, repository.NopPublisher{}, metrics.Nop{}, l)
}

func fail(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
}
