package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/backmassage/picname/internal/config"
)

// MaxNameLen caps a generated name, in characters.
const MaxNameLen = 200

// Transform converts free text into a name under format, trimmed and
// capped at MaxNameLen characters. It returns "" when nothing usable is
// left, which callers treat as "skip this file".
func Transform(text string, format config.CasingFormat) string {
	return TransformLimit(text, format, MaxNameLen)
}

// TransformLimit is Transform with an explicit cap. A limit <= 0 means
// MaxNameLen.
func TransformLimit(text string, format config.CasingFormat, limit int) string {
	if limit <= 0 {
		limit = MaxNameLen
	}
	name := strings.TrimSpace(applyCase(Words(text), format))
	return strings.TrimRightFunc(Truncate(name, limit), unicode.IsSpace)
}

// Truncate cuts s to at most n characters. It never splits a rune.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Words splits text into words. Runs of anything other than letters and
// digits separate words, as do case changes: "redSportsCar" and
// "HTTPServer" split into ["red" "Sports" "Car"] and ["HTTP" "Server"].
func Words(text string) []string {
	var words []string
	runes := []rune(text)
	start := -1
	flush := func(end int) {
		if start >= 0 {
			words = append(words, string(runes[start:end]))
			start = -1
		}
	}
	for i, r := range runes {
		if !isWordRune(r) {
			flush(i)
			continue
		}
		if start >= 0 && caseBoundary(runes, i) {
			flush(i)
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(runes))
	return words
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// caseBoundary reports whether a new word starts at runes[i], given that
// runes[i-1] is part of the current word.
func caseBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	if !unicode.IsUpper(cur) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// Last capital of an acronym starts the next word: "HTTPServer".
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func applyCase(words []string, format config.CasingFormat) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	for i, w := range words {
		lower := strings.ToLower(w)
		switch format {
		case config.FormatPascal, config.FormatCapital:
			out[i] = capitalize(lower)
		case config.FormatCamel:
			if i == 0 {
				out[i] = lower
			} else {
				out[i] = capitalize(lower)
			}
		case config.FormatSentence:
			if i == 0 {
				out[i] = capitalize(lower)
			} else {
				out[i] = lower
			}
		default:
			out[i] = lower
		}
	}
	return strings.Join(out, separator(format))
}

func separator(format config.CasingFormat) string {
	switch format {
	case config.FormatSnake:
		return "_"
	case config.FormatKebab:
		return "-"
	case config.FormatPascal, config.FormatCamel:
		return ""
	default:
		return " "
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
