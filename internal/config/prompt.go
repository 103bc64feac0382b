package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultPromptConcurrency is offered when the user is asked for a
// concurrency bound and just presses enter.
const DefaultPromptConcurrency = 3

// Prompt asks on out for any per-run choice still missing from cfg
// (casing format, concurrency) and reads answers from in. An empty answer
// takes the offered default; an invalid answer is asked again until in is
// exhausted.
func Prompt(cfg *Config, in io.Reader, out io.Writer) error {
	if cfg.Format != "" && cfg.Concurrency > 0 {
		return nil
	}
	r := bufio.NewReader(in)

	if cfg.Format == "" {
		f, err := promptFormat(r, out)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if cfg.Concurrency <= 0 {
		n, err := promptConcurrency(r, out)
		if err != nil {
			return err
		}
		cfg.Concurrency = n
	}
	return nil
}

func promptFormat(r *bufio.Reader, out io.Writer) (CasingFormat, error) {
	fmt.Fprintln(out, "Naming format:")
	for i, f := range Formats {
		fmt.Fprintf(out, "  %d) %-10s %s\n", i+1, f, formatExample(f))
	}
	for {
		fmt.Fprintf(out, "Choose [1-%d] (default 1): ", len(Formats))
		answer, err := readAnswer(r)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return Formats[0], nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(Formats) {
			return Formats[n-1], nil
		}
		if f, err := ParseCasingFormat(answer); err == nil {
			return f, nil
		}
		fmt.Fprintf(out, "Unknown format %q\n", answer)
	}
}

func promptConcurrency(r *bufio.Reader, out io.Writer) (int, error) {
	for {
		fmt.Fprintf(out, "Files to process at once (default %d): ", DefaultPromptConcurrency)
		answer, err := readAnswer(r)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return DefaultPromptConcurrency, nil
		}
		n, err := parseConcurrency(answer)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(out, err)
	}
}

// readAnswer returns one trimmed line. EOF with a partial line returns the
// line; EOF with nothing left is an error so callers stop looping.
func readAnswer(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func formatExample(f CasingFormat) string {
	switch f {
	case FormatSnake:
		return "red_sports_car"
	case FormatKebab:
		return "red-sports-car"
	case FormatPascal:
		return "RedSportsCar"
	case FormatCamel:
		return "redSportsCar"
	case FormatCapital:
		return "Red Sports Car"
	case FormatLowercase:
		return "red sports car"
	case FormatSentence:
		return "Red sports car"
	}
	return ""
}
