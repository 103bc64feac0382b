// Package logging provides the leveled console logger used throughout a
// run, with an optional structured JSON file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/backmassage/picname/internal/config"
	"github.com/backmassage/picname/internal/term"
)

// Logger provides leveled, optionally colored console logging. When a log
// file is configured every line is also written there as a JSON record
// tagged with the run ID.
type Logger struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	file   *os.File
	sink   zerolog.Logger
	runID  string
}

// NewLogger configures terminal colors from cfg and optionally opens
// cfg.LogFile for appending. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{
		stdout: os.Stdout,
		stderr: os.Stderr,
		sink:   zerolog.Nop(),
		runID:  ulid.Make().String(),
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.sink = zerolog.New(f).With().Timestamp().Str("run_id", l.runID).Logger()
	}
	return l, nil
}

// RunID returns the ULID that tags every structured record of this run.
func (l *Logger) RunID() string { return l.runID }

// Structured returns the JSON file sink for per-file records. It is a
// no-op logger when no log file is configured.
func (l *Logger) Structured() *zerolog.Logger { return &l.sink }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.sink = zerolog.Nop()
		return err
	}
	return nil
}

func (l *Logger) line(level string, zl zerolog.Level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if level == "ERROR" {
		out = l.stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, ts+" ["+level+"] "+text+"\n")
	}
	if l.file != nil && text != "" {
		l.sink.WithLevel(zl).Str("tag", level).Msg(text)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", zerolog.InfoLevel, term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", zerolog.InfoLevel, term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", zerolog.WarnLevel, term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", zerolog.ErrorLevel, term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", zerolog.DebugLevel, term.Cyan, fmt.Sprintf(format, args...))
}
