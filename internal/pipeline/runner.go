package pipeline

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/backmassage/picname/internal/config"
	"github.com/backmassage/picname/internal/describe"
	"github.com/backmassage/picname/internal/display"
	"github.com/backmassage/picname/internal/logging"
	"github.com/backmassage/picname/internal/naming"
)

// Run is the top-level batch entry point. It admits inputs, runs every
// admitted file through the pipeline with cfg.Concurrency workers, and
// returns the aggregate summary. File-level failures never make Run fail.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, d describe.Describer) RunSummary {
	paths, rejected := Admit(cfg.Inputs)
	for _, r := range rejected {
		log.Warn("Skipping %s: %s", r.Path, r.Reason)
	}
	if len(paths) == 0 {
		log.Warn("No supported images to process (png, jpg, jpeg, webp)")
		return RunSummary{}
	}

	logBatchHeader(cfg, log, len(paths))

	p := &Processor{
		Format:     cfg.Format,
		MaxNameLen: cfg.MaxNameLen,
		Describer:  d,
		Renamer:    naming.NewRenamer(cfg.DryRun),
		Log:        log,
		Verbose:    cfg.Verbose,
	}
	summary := Schedule(ctx, paths, cfg.Concurrency, p.Process, func(pr Progress) {
		logProgress(cfg, log, pr)
	})

	logSummary(cfg, log, &summary)
	return summary
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, total int) {
	log.Info("Found %d images", total)
	log.Info("Format: %s | Concurrency: %d | Model: %s", cfg.Format, cfg.Concurrency, cfg.Model)
	if cfg.BaseURL != "" {
		log.Info("Endpoint: %s", cfg.BaseURL)
	}
	if cfg.RequestsPerSecond > 0 {
		log.Info("Pacing: %g requests/s", cfg.RequestsPerSecond)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be renamed")
	}
	log.Info("")
}

func logProgress(cfg *config.Config, log *logging.Logger, pr Progress) {
	o := pr.Outcome
	counter := display.FormatCounter(pr.Done, pr.Total)
	src := filepath.Base(o.Source)

	switch o.Status {
	case Succeeded:
		if cfg.DryRun {
			log.Success("%s [DRY] %s -> %s", counter, src, filepath.Base(o.Destination))
		} else {
			log.Success("%s %s -> %s", counter, src, filepath.Base(o.Destination))
		}
	case Skipped:
		if o.Reason == SkipExists {
			log.Warn("%s Skip (%s): %s -> %s", counter, o.Reason, src, filepath.Base(o.Destination))
		} else {
			log.Warn("%s Skip (%s): %s", counter, o.Reason, src)
		}
	default:
		log.Error("%s Failed: %s: %v", counter, src, o.Err)
	}

	ev := log.Structured().Info()
	if o.Status == Failed {
		ev = log.Structured().Error().Err(o.Err)
	}
	ev = ev.Str("source", o.Source).Str("status", o.Status.String()).
		Int("done", pr.Done).Int("total", pr.Total).Bool("dry_run", cfg.DryRun)
	if o.Destination != "" {
		ev = ev.Str("destination", o.Destination)
	}
	if o.Reason != "" {
		ev = ev.Str("reason", string(o.Reason))
	}
	ev.Msg("file processed")
}

func logSummary(cfg *config.Config, log *logging.Logger, s *RunSummary) {
	verb := "renamed"
	if cfg.DryRun {
		verb = "would rename"
	}
	log.Info("")
	log.Info("==============================")
	log.Info("Done: %d %s, %d skipped, %d failed", s.Succeeded, verb, s.Skipped, s.Failed)
	log.Info("  Total files processed: %d/%d", s.Done, s.Total)
	for _, reason := range sortedReasons(s.SkipReasons) {
		log.Info("  Skipped (%s): %d", reason, s.SkipReasons[reason])
	}
	if s.Interrupted() {
		log.Warn("Interrupted: %d files were not started", s.SkipReasons[SkipInterrupted])
	}

	log.Structured().Info().
		Int("total", s.Total).
		Int("succeeded", s.Succeeded).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Msgf("run finished (%s)", verb)
}

func sortedReasons(m map[SkipReason]int) []SkipReason {
	reasons := make([]SkipReason, 0, len(m))
	for r := range m {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
