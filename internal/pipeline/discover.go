package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported image extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// IsImagePath reports whether path has a supported extension, ignoring case.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Rejection records an input that was not admitted.
type Rejection struct {
	Path   string
	Reason string
}

// Admit filters inputs down to the paths the pipeline may process: regular,
// readable files with a supported extension. Directories contribute their
// images recursively, in sorted order. A path named twice is admitted once.
func Admit(inputs []string) (admitted []string, rejected []Rejection) {
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if seen[key] {
			return
		}
		seen[key] = true
		admitted = append(admitted, path)
	}

	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil {
			rejected = append(rejected, Rejection{Path: in, Reason: "not found"})
			continue
		}
		if fi.IsDir() {
			files, err := Discover(in)
			if err != nil {
				rejected = append(rejected, Rejection{Path: in, Reason: "cannot walk directory: " + err.Error()})
				continue
			}
			for _, f := range files {
				if reason := checkFile(f); reason != "" {
					rejected = append(rejected, Rejection{Path: f, Reason: reason})
					continue
				}
				add(f)
			}
			continue
		}
		if reason := checkFile(in); reason != "" {
			rejected = append(rejected, Rejection{Path: in, Reason: reason})
			continue
		}
		add(in)
	}
	return admitted, rejected
}

// checkFile returns why path cannot be admitted, or "" if it can.
func checkFile(path string) string {
	if !IsImagePath(path) {
		return "unsupported extension"
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "not found"
	}
	if !fi.Mode().IsRegular() {
		return "not a regular file"
	}
	f, err := os.Open(path)
	if err != nil {
		return "not readable"
	}
	f.Close()
	return ""
}

// Discover walks dir, collects files with image extensions, and returns the
// paths sorted lexicographically for deterministic launch order.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsImagePath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
