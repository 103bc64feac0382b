package display

import "fmt"

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDimensions returns "WxH" for an image, or "?x?" when unknown.
func FormatDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return "?x?"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatCounter returns the "[done/total]" prefix used on progress lines,
// with done padded to the width of total so lines stay aligned.
func FormatCounter(done, total int) string {
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("[%*d/%d]", width, done, total)
}
