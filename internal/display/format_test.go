package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical file 700 MiB", 734003200, "700.0 MiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want string
	}{
		{"landscape", 1920, 1080, "1920x1080"},
		{"square", 512, 512, "512x512"},
		{"unknown width", 0, 100, "?x?"},
		{"unknown both", 0, 0, "?x?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDimensions(tt.w, tt.h)
			if got != tt.want {
				t.Errorf("FormatDimensions(%d, %d) = %q, want %q", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestFormatCounter(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		want        string
	}{
		{"single digit", 3, 9, "[3/9]"},
		{"padded", 3, 20, "[ 3/20]"},
		{"complete", 120, 120, "[120/120]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCounter(tt.done, tt.total)
			if got != tt.want {
				t.Errorf("FormatCounter(%d, %d) = %q, want %q", tt.done, tt.total, got, tt.want)
			}
		})
	}
}
