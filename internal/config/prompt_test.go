package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	var out strings.Builder

	require.NoError(t, Prompt(&cfg, strings.NewReader("\n\n"), &out))

	assert.Equal(t, Formats[0], cfg.Format)
	assert.Equal(t, DefaultPromptConcurrency, cfg.Concurrency)
	assert.Contains(t, out.String(), "red_sports_car")
}

func TestPrompt_ByNumberAndName(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Prompt(&cfg, strings.NewReader("3\n8\n"), &strings.Builder{}))
	assert.Equal(t, FormatPascal, cfg.Format)
	assert.Equal(t, 8, cfg.Concurrency)

	cfg = DefaultConfig()
	require.NoError(t, Prompt(&cfg, strings.NewReader("Capital\n1"), &strings.Builder{}))
	assert.Equal(t, FormatCapital, cfg.Format)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestPrompt_RetriesInvalidAnswers(t *testing.T) {
	cfg := DefaultConfig()
	var out strings.Builder

	require.NoError(t, Prompt(&cfg, strings.NewReader("99\nkebab\n-1\nlots\n5\n"), &out))

	assert.Equal(t, FormatKebab, cfg.Format)
	assert.Equal(t, 5, cfg.Concurrency)
	assert.Contains(t, out.String(), `Unknown format "99"`)
}

func TestPrompt_SkipsAnsweredChoices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatCamel
	var out strings.Builder

	require.NoError(t, Prompt(&cfg, strings.NewReader("7\n"), &out))

	assert.Equal(t, FormatCamel, cfg.Format)
	assert.Equal(t, 7, cfg.Concurrency)
	assert.NotContains(t, out.String(), "Naming format")
}

func TestPrompt_EOFIsError(t *testing.T) {
	cfg := DefaultConfig()
	err := Prompt(&cfg, strings.NewReader(""), &strings.Builder{})
	assert.Error(t, err)
}

func TestLoad_InteractiveRequiresKeyBeforePrompting(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	noEnv := "--env-file=" + filepath.Join(t.TempDir(), "absent.env")
	var out strings.Builder

	_, err := Load("test", []string{noEnv, "a.png"}, true, strings.NewReader("1\n4\n"), &out)

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Empty(t, out.String(), "nothing should be asked")
}

func TestLoad_InteractivePromptsWithKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "sk-test")
	noEnv := "--env-file=" + filepath.Join(t.TempDir(), "absent.env")

	cfg, err := Load("test", []string{noEnv, "a.png"}, true, strings.NewReader("2\n4\n"), &strings.Builder{})

	require.NoError(t, err)
	assert.Equal(t, FormatKebab, cfg.Format)
	assert.Equal(t, 4, cfg.Concurrency)
}
