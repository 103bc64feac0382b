package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/backmassage/picname/internal/config"
)

func TestTransform_Formats(t *testing.T) {
	tests := []struct {
		format config.CasingFormat
		want   string
	}{
		{config.FormatSnake, "red_sports_car"},
		{config.FormatKebab, "red-sports-car"},
		{config.FormatPascal, "RedSportsCar"},
		{config.FormatCamel, "redSportsCar"},
		{config.FormatCapital, "Red Sports Car"},
		{config.FormatLowercase, "red sports car"},
		{config.FormatSentence, "Red sports car"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := Transform("Red Sports Car", tt.format); got != tt.want {
				t.Errorf("Transform(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestTransform_Inputs(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format config.CasingFormat
		want   string
	}{
		{"empty", "", config.FormatSnake, ""},
		{"only punctuation", "  ...!?  ", config.FormatKebab, ""},
		{"surrounding whitespace", "\n  golden retriever puppy \t", config.FormatSnake, "golden_retriever_puppy"},
		{"punctuation delimits", "sunset, over the sea.", config.FormatKebab, "sunset-over-the-sea"},
		{"camel input", "redSportsCar", config.FormatSnake, "red_sports_car"},
		{"acronym", "HTTPServer rack", config.FormatKebab, "http-server-rack"},
		{"digits", "2 cats on 1 sofa", config.FormatPascal, "2CatsOn1Sofa"},
		{"digit then upper", "model3Tesla", config.FormatSnake, "model3_tesla"},
		{"unicode letters", "café au lait", config.FormatCamel, "caféAuLait"},
		{"path chars removed", "a/b\\c:d", config.FormatSnake, "a_b_c_d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.in, tt.format); got != tt.want {
				t.Errorf("Transform(%q, %s) = %q, want %q", tt.in, tt.format, got, tt.want)
			}
		})
	}
}

func TestTransform_Deterministic(t *testing.T) {
	for _, f := range config.Formats {
		a := Transform("A Dog Running On The Beach", f)
		b := Transform("A Dog Running On The Beach", f)
		if a != b {
			t.Errorf("%s: %q != %q", f, a, b)
		}
	}
}

func TestTransform_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	for _, f := range config.Formats {
		got := Transform(long, f)
		if n := utf8.RuneCountInString(got); n > MaxNameLen {
			t.Errorf("%s: %d characters, want <= %d", f, n, MaxNameLen)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("%s: untrimmed result %q", f, got)
		}
	}

	exact := strings.Repeat("a", 300)
	if got := Transform(exact, config.FormatSnake); got != strings.Repeat("a", 200) {
		t.Errorf("prefix cut: got %d characters", len(got))
	}
}

func TestTransformLimit(t *testing.T) {
	if got := TransformLimit("red sports car", config.FormatSnake, 7); got != "red_spo" {
		t.Errorf("got %q", got)
	}
	if got := TransformLimit("red sports car", config.FormatCapital, 4); got != "Red" {
		t.Errorf("trailing space kept: %q", got)
	}
}

func TestTruncate_Runes(t *testing.T) {
	if got := Truncate("ééééé", 3); got != "ééé" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
}

func TestWords(t *testing.T) {
	got := Words("myHTTPServer_v2--final")
	want := []string{"my", "HTTP", "Server", "v2", "final"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Words = %v, want %v", got, want)
	}
}
