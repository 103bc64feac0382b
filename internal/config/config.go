// Package config holds runtime configuration: defaults, config file and
// environment loading, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// CasingFormat selects how a description is turned into a filename.
type CasingFormat string

const (
	FormatSnake     CasingFormat = "snake"     // red_sports_car
	FormatKebab     CasingFormat = "kebab"     // red-sports-car
	FormatPascal    CasingFormat = "pascal"    // RedSportsCar
	FormatCamel     CasingFormat = "camel"     // redSportsCar
	FormatCapital   CasingFormat = "capital"   // Red Sports Car
	FormatLowercase CasingFormat = "lowercase" // red sports car
	FormatSentence  CasingFormat = "sentence"  // Red sports car
)

// Formats lists every casing format in the order shown to users.
var Formats = []CasingFormat{
	FormatSnake, FormatKebab, FormatPascal, FormatCamel,
	FormatCapital, FormatLowercase, FormatSentence,
}

// ParseCasingFormat maps user input (case-insensitive) to a CasingFormat.
func ParseCasingFormat(s string) (CasingFormat, error) {
	want := CasingFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (use %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultModel is used when neither the config file, the environment, nor
// --model names one.
const DefaultModel = "gpt-4o-mini"

// Sentinel errors for run-level preconditions.
var (
	ErrMissingAPIKey      = errors.New("OPENAI_API_KEY is not set")
	ErrMissingFormat      = errors.New("casing format is required (use --format)")
	ErrInvalidConcurrency = errors.New("concurrency must be a positive integer (use --concurrency)")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [Load] (file, environment, flags, prompts) before being passed by
// pointer to the packages that need it.
type Config struct {
	// Inputs (positional args): image files or directories.
	Inputs []string

	// Remote description service.
	APIKey            string        // Required. OPENAI_API_KEY or api_key.
	Model             string        // Default: DefaultModel.
	BaseURL           string        // Optional OpenAI-compatible endpoint.
	RequestTimeout    time.Duration // Fixed: 10s per description request.
	RequestsPerSecond float64       // Default: 0 (unpaced).

	// Per-run choices.
	Format      CasingFormat // Required; prompted for when interactive.
	Concurrency int          // Required, > 0; prompted for when interactive.
	MaxNameLen  int          // Fixed: 200 characters.

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional structured log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
	ConfigFile string    // Optional TOML/YAML config file.
	EnvFile    string    // Default: ".env"; missing file is not an error.
}

// DefaultConfig returns a Config with every default applied. Format and
// Concurrency are deliberately unset: they are chosen per run.
func DefaultConfig() Config {
	return Config{
		Model:          DefaultModel,
		RequestTimeout: 10 * time.Second,
		MaxNameLen:     200,
		ColorMode:      ColorAuto,
		EnvFile:        ".env",
	}
}

// Validate checks enum fields and per-run requirements. The API key is
// checked here too, so a missing credential is reported before any file
// is touched.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative (got %g)", c.RequestsPerSecond)
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}

	// --check reports a missing key itself instead of failing here.
	if c.CheckOnly {
		return nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Format == "" {
		return ErrMissingFormat
	}
	if _, err := ParseCasingFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// MaskedAPIKey returns the key with everything but the last four
// characters hidden, for diagnostics output.
func (c *Config) MaskedAPIKey() string {
	k := strings.TrimSpace(c.APIKey)
	if k == "" {
		return "(not set)"
	}
	if len(k) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + k[len(k)-4:]
}
