// Package check provides the --check diagnostics and the pre-pipeline
// credential validation (CheckDeps).
package check

import (
	"context"
	"errors"
	"strings"

	"github.com/backmassage/picname/internal/config"
	"github.com/backmassage/picname/internal/describe"
)

// ErrModelUnavailable prefixes --check failures where the service
// rejected the configured model or key.
var ErrModelUnavailable = errors.New("model check failed")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// ModelChecker asks the description service whether the configured model
// is usable. *describe.Client implements it.
type ModelChecker interface {
	CheckModel(ctx context.Context) error
}

// RunCheck runs the --check flow: prints the resolved configuration, then
// verifies the API key and, if one is set, the model against the service.
// It reports every result and returns false if any check failed.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger, mc ModelChecker) bool {
	log.Info("=== System Check ===")
	logConfig(cfg, log)

	if err := CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("API key: %s", cfg.MaskedAPIKey())

	if mc == nil {
		log.Warn("Model check skipped")
		return true
	}
	log.Info("Checking model %s...", cfg.Model)
	if err := mc.CheckModel(ctx); err != nil {
		logModelError(log, cfg.Model, err)
		return false
	}
	log.Success("Model %s is available", cfg.Model)
	return true
}

// CheckDeps is the pre-pipeline validation: the only hard dependency of a
// run is the API credential.
func CheckDeps(cfg *config.Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return config.ErrMissingAPIKey
	}
	return nil
}

// --- internal helpers ---

func logConfig(cfg *config.Config, log Logger) {
	if cfg.ConfigFile != "" {
		log.Info("Config file: %s", cfg.ConfigFile)
	}
	log.Info("Model: %s", cfg.Model)
	if cfg.BaseURL != "" {
		log.Info("Endpoint: %s", cfg.BaseURL)
	} else {
		log.Info("Endpoint: OpenAI default")
	}
	log.Info("Request timeout: %s", cfg.RequestTimeout)
	if cfg.RequestsPerSecond > 0 {
		log.Info("Pacing: %g requests/s", cfg.RequestsPerSecond)
	}
	if cfg.Format != "" {
		log.Info("Format: %s", cfg.Format)
	}
	if cfg.Concurrency > 0 {
		log.Info("Concurrency: %d", cfg.Concurrency)
	}
	if cfg.LogFile != "" {
		log.Info("Log file: %s", cfg.LogFile)
	}
}

func logModelError(log Logger, model string, err error) {
	var de *describe.DescribeError
	if errors.As(err, &de) && de.Kind == describe.KindStatus {
		switch de.StatusCode {
		case 401, 403:
			log.Error("%v: API key rejected (HTTP %d)", ErrModelUnavailable, de.StatusCode)
			return
		case 404:
			log.Error("%v: model %s not found", ErrModelUnavailable, model)
			return
		}
	}
	log.Error("%v: %v", ErrModelUnavailable, err)
}
