package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/picname/internal/config"
	"github.com/backmassage/picname/internal/describe"
	"github.com/backmassage/picname/internal/display"
	"github.com/backmassage/picname/internal/logging"
	"github.com/backmassage/picname/internal/naming"
	"github.com/backmassage/picname/internal/probe"
)

// State is a step of the per-file pipeline.
type State int

const (
	StatePending State = iota
	StateEncoding
	StateDescribing
	StateTransforming
	StateRenaming
)

func (s State) String() string {
	return [...]string{"pending", "encoding", "describing", "transforming", "renaming"}[s]
}

// Processor runs one file through encode → describe → transform → rename.
// A Processor is shared by every pipeline of a run.
type Processor struct {
	Format     config.CasingFormat
	MaxNameLen int
	Describer  describe.Describer
	Renamer    *naming.Renamer

	Log     *logging.Logger // Optional; used for verbose per-file detail.
	Verbose bool
}

// PanicError is the Failed cause when a pipeline panics.
type PanicError struct {
	State State
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while %s: %v", e.State, e.Value)
}

// Process always returns exactly one Outcome for path. Errors and panics
// become Failed outcomes; nothing propagates to the caller.
func (p *Processor) Process(ctx context.Context, path string) (out Outcome) {
	state := StatePending
	defer func() {
		if r := recover(); r != nil {
			out = failed(path, &PanicError{State: state, Value: r})
		}
	}()

	state = StateEncoding
	p.logProbe(path)
	img, err := describe.Encode(path)
	if err != nil {
		return failed(path, err)
	}

	state = StateDescribing
	text, err := p.Describer.Describe(ctx, img)
	if err != nil {
		return failed(path, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return skipped(path, SkipEmptyDescription)
	}
	p.debug("  %s: described as %q", filepath.Base(path), text)

	state = StateTransforming
	name := naming.TransformLimit(text, p.Format, p.MaxNameLen)
	if name == "" {
		return skipped(path, SkipEmptyName)
	}
	dst := naming.DestinationPath(path, name)
	if dst == filepath.Clean(path) {
		return skipped(path, SkipUnchanged)
	}

	state = StateRenaming
	res, err := p.Renamer.TryRename(path, dst)
	if err != nil {
		return failed(path, err)
	}
	if res == naming.RenameSkippedExists {
		out = skipped(path, SkipExists)
		out.Destination = dst
		return out
	}
	return succeeded(path, dst)
}

func (p *Processor) logProbe(path string) {
	if !p.Verbose || p.Log == nil {
		return
	}
	info, err := probe.Probe(path)
	if err != nil {
		p.Log.Debug(true, "  %s: cannot read image header: %v", filepath.Base(path), err)
		return
	}
	p.Log.Debug(true, "  %s: %s %s | %s", filepath.Base(path), info.Format,
		display.FormatDimensions(info.Width, info.Height), display.FormatBytes(info.Size))
}

func (p *Processor) debug(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Debug(p.Verbose, format, args...)
	}
}
