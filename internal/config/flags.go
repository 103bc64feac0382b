package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into naming, service, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so earlier sources hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, bad enum value). Values already in cfg act as flag defaults, so
// file and environment settings survive unless a flag overrides them.
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("picname", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var negated negatedFlags

	defineNamingFlags(fs, cfg)
	defineServiceFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "picname v"+version)
		os.Exit(0)
	}

	cfg.Inputs = append([]string(nil), fs.Args()...)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineNamingFlags registers -f/--format and -j/--concurrency.
func defineNamingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&formatValue{&cfg.Format}, "format", "Casing format: "+formatList())
	fs.Var(&formatValue{&cfg.Format}, "f", "Same as --format")
	fs.Var(&concurrencyValue{&cfg.Concurrency}, "concurrency", "Files processed at once (positive integer)")
	fs.Var(&concurrencyValue{&cfg.Concurrency}, "j", "Same as --concurrency")
}

// defineServiceFlags registers -m/--model, --base-url, --rps.
func defineServiceFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Vision model identifier")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "Same as --model")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "OpenAI-compatible API base URL")
	fs.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "Max description requests per second (0 = unlimited)")
}

// defineBehaviorFlags registers -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Describe and name files but do not rename")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --env-file, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	// --config is consumed by Load before flags are parsed; it is
	// registered here so the flag set accepts it.
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML or YAML config file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file to load")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "picname v" + version + " - rename images after what they show"},
		{"", ""},
		{"  picname [OPTIONS] <image|dir>...", ""},
		{"", ""},
		{"Naming", ""},
		{"  -f, --format <name>", "snake | kebab | pascal | camel | capital | lowercase | sentence"},
		{"  -j, --concurrency <n>", "Files processed at once"},
		{"", ""},
		{"Service", ""},
		{"  -m, --model <id>", "Vision model (default: " + DefaultModel + ")"},
		{"  --base-url <url>", "OpenAI-compatible endpoint"},
		{"  --rps <n>", "Max requests per second (default: unlimited)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Show new names without renaming"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "TOML or YAML config file"},
		{"  --env-file <path>", "dotenv file (default: .env)"},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  -c, --check", "Diagnostics (API key, model)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Environment", ""},
		{"  OPENAI_API_KEY", "API key (required)"},
		{"  OPENAI_MODEL", "Vision model"},
		{"  OPENAI_BASE_URL", "API endpoint"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum and bounded types can be used with flag.Var.

type formatValue struct{ p *CasingFormat }

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *formatValue) Set(s string) error {
	v, err := ParseCasingFormat(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

type concurrencyValue struct{ p *int }

func (c *concurrencyValue) String() string {
	if c.p == nil || *c.p == 0 {
		return ""
	}
	return strconv.Itoa(*c.p)
}

func (c *concurrencyValue) Set(s string) error {
	n, err := parseConcurrency(s)
	if err != nil {
		return err
	}
	*c.p = n
	return nil
}

// parseConcurrency parses a positive whole number; returns a clear error on failure.
func parseConcurrency(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("concurrency must be a positive whole number (got %q)", s)
	}
	return n, nil
}
