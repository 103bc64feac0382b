package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables read by [ApplyEnv].
const (
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvModel   = "OPENAI_MODEL"
	EnvBaseURL = "OPENAI_BASE_URL"
)

// ErrUnsupportedConfigFile is returned for config files that are neither
// TOML nor YAML.
var ErrUnsupportedConfigFile = errors.New("config file must be .toml, .yaml or .yml")

// Load builds the run configuration from every source, lowest precedence
// first: defaults, config file, environment (after loading the dotenv
// file), CLI flags. When interactive is true, missing per-run choices are
// then prompted for on in/out, provided an API key is set. The result is
// not validated.
func Load(version string, args []string, interactive bool, in io.Reader, out io.Writer) (Config, error) {
	cfg := DefaultConfig()

	if path := peekFlag(args, "config"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
		cfg.ConfigFile = path
	}

	if path := peekFlag(args, "env-file"); path != "" {
		cfg.EnvFile = path
	}
	if err := LoadDotEnv(cfg.EnvFile); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg, os.Getenv)

	if err := ParseFlags(&cfg, version, args); err != nil {
		return cfg, err
	}

	if interactive && !cfg.CheckOnly {
		// Don't ask for per-run choices when the run cannot start anyway.
		if strings.TrimSpace(cfg.APIKey) == "" {
			return cfg, ErrMissingAPIKey
		}
		if err := Prompt(&cfg, in, out); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// fileConfig mirrors the keys accepted in a config file. Pointer fields
// distinguish "absent" from zero values so absent keys keep defaults.
type fileConfig struct {
	APIKey            *string  `toml:"api_key" yaml:"api_key"`
	Model             *string  `toml:"model" yaml:"model"`
	BaseURL           *string  `toml:"base_url" yaml:"base_url"`
	Format            *string  `toml:"format" yaml:"format"`
	Concurrency       *int     `toml:"concurrency" yaml:"concurrency"`
	RequestsPerSecond *float64 `toml:"requests_per_second" yaml:"requests_per_second"`
	LogFile           *string  `toml:"log_file" yaml:"log_file"`
	Color             *string  `toml:"color" yaml:"color"`
	DryRun            *bool    `toml:"dry_run" yaml:"dry_run"`
	Verbose           *bool    `toml:"verbose" yaml:"verbose"`
}

// LoadFile reads a TOML or YAML config file (chosen by extension) and
// applies every key it sets onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedConfigFile)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.APIKey != nil {
		cfg.APIKey = *fc.APIKey
	}
	if fc.Model != nil {
		cfg.Model = *fc.Model
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Format != nil {
		f, err := ParseCasingFormat(*fc.Format)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if fc.Concurrency != nil {
		if *fc.Concurrency <= 0 {
			return ErrInvalidConcurrency
		}
		cfg.Concurrency = *fc.Concurrency
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(strings.ToLower(*fc.Color))
	}
	if fc.DryRun != nil {
		cfg.DryRun = *fc.DryRun
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	return nil
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies OPENAI_* settings from getenv onto cfg. Empty values are
// ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
}

// peekFlag returns the value of --name / -name in args without parsing
// the rest, so sources that flags must override can be loaded first.
func peekFlag(args []string, name string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		if !strings.HasPrefix(a, "-") {
			continue
		}
		trimmed := strings.TrimLeft(a, "-")
		if v, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return v
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
