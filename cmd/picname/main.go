// Command picname renames images after what they show.
//
// It loads configuration (config file, environment, flags, prompts), then
// either runs diagnostics (--check) or describes every input image with a
// vision model and renames it under the chosen casing format.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/picname/internal/check"
	"github.com/backmassage/picname/internal/config"
	"github.com/backmassage/picname/internal/describe"
	"github.com/backmassage/picname/internal/display"
	"github.com/backmassage/picname/internal/logging"
	"github.com/backmassage/picname/internal/pipeline"
	"github.com/backmassage/picname/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(guard(os.Stderr, run))
}

// guard runs body and turns a panic that escapes it into exit code 1.
func guard(stderr io.Writer, body func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "picname: fatal: %v\n", r)
			code = 1
		}
	}()
	return body()
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg, err := config.Load(version, os.Args[1:], term.IsInteractive(), os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picname: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "picname: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picname: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(os.Stdout)

	client := describe.NewClient(describe.OptionsFromConfig(&cfg, log.Structured()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, log, client) {
			return 1
		}
		return 0
	}

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== picname v%s (%s) ===", version, commit)
	log.Debug(cfg.Verbose, "Run ID: %s", log.RunID())
	log.Debug(cfg.Verbose, "API key: %s", cfg.MaskedAPIKey())

	// Phase 3: Signal handling. Cancelling stops new files from starting;
	// files already in flight finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing files in progress…")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run pipeline (admit → describe → transform → rename).
	pipeline.Run(ctx, &cfg, log, client)
	return 0
}
