package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/picname/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
	l.Structured().Info().Msg("dropped")
	if len(l.RunID()) != 26 {
		t.Errorf("RunID %q is not a ULID", l.RunID())
	}
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "picname.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	var console bytes.Buffer
	l.stdout = &console
	l.stderr = &console

	l.Info("to file")
	l.Error("broken %s", "thing")
	l.Debug(false, "hidden")
	l.Structured().Info().Str("source", "a.png").Msg("renamed")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(console.Bytes(), []byte("[INFO] to file")) {
		t.Errorf("console output: %s", console.String())
	}

	f, err := os.Open(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var records []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line is not JSON: %q", sc.Text())
		}
		records = append(records, rec)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %v", len(records), records)
	}
	if records[0]["message"] != "to file" || records[0]["tag"] != "INFO" {
		t.Errorf("first record: %v", records[0])
	}
	if records[1]["level"] != "error" || records[1]["message"] != "broken thing" {
		t.Errorf("second record: %v", records[1])
	}
	if records[2]["source"] != "a.png" {
		t.Errorf("structured record: %v", records[2])
	}
	for _, rec := range records {
		if rec["run_id"] != l.RunID() {
			t.Errorf("record missing run_id: %v", rec)
		}
	}
}
