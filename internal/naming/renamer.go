package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// RenameResult is the non-error result of a rename attempt.
type RenameResult int

const (
	Renamed             RenameResult = iota // File now lives at the destination.
	RenameSkippedExists                     // Destination was taken; nothing changed.
)

func (r RenameResult) String() string {
	if r == Renamed {
		return "renamed"
	}
	return "exists"
}

// RenameError reports a failed existence check or rename.
type RenameError struct {
	Src, Dst string
	Err      error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %s -> %s: %v", e.Src, e.Dst, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// Renamer serializes the check-then-rename step for a whole run, so two
// files that resolve to the same name never overwrite each other: the first
// to take the lock wins and the rest see the destination as taken.
// All methods are goroutine-safe.
type Renamer struct {
	mu     sync.Mutex
	dryRun bool
	owners map[string]string // destination → source that claimed it (dry run)
}

// NewRenamer creates a ready-to-use Renamer. In dry-run mode nothing on
// disk changes; destinations are claimed in memory instead.
func NewRenamer(dryRun bool) *Renamer {
	return &Renamer{dryRun: dryRun, owners: make(map[string]string)}
}

// TryRename renames src to dst unless something already exists at dst.
// Any existing entry counts, whatever its type. The one exception is a
// case-only rename on a case-insensitive filesystem, where dst resolves to
// src itself.
func (r *Renamer) TryRename(src, dst string) (RenameResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := occupied(src, dst)
	if err != nil {
		return 0, &RenameError{Src: src, Dst: dst, Err: err}
	}
	if taken {
		return RenameSkippedExists, nil
	}

	if r.dryRun {
		if owner, ok := r.owners[dst]; ok && owner != src {
			return RenameSkippedExists, nil
		}
		r.owners[dst] = src
		return Renamed, nil
	}

	if err := os.Rename(src, dst); err != nil {
		return 0, &RenameError{Src: src, Dst: dst, Err: err}
	}
	return Renamed, nil
}

// occupied reports whether dst is taken for src. An existing entry is
// free only when dst differs from src by letter case alone and resolves to
// the same file, as on a case-insensitive filesystem. Hard links and
// uncleaned spellings of src itself count as taken.
func occupied(src, dst string) (bool, error) {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	cleanSrc, cleanDst := filepath.Clean(src), filepath.Clean(dst)
	if cleanSrc == cleanDst || !strings.EqualFold(cleanSrc, cleanDst) {
		return true, nil
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, err
	}
	return !os.SameFile(srcInfo, dstInfo), nil
}
