// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/output"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, -10.0, cfg.WrongScore)
	assert.Empty(t, cfg.Category)
	assert.Equal(t, output.DefaultPreviewChars, cfg.PreviewChars)
	assert.Equal(t, output.DefaultFilename, cfg.Output)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.EqualValues(t, 10<<20, cfg.HTTP.MaxUploadBytes)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, gift.DefaultOptions(), opts)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "giftgen.yaml", `wrong_score: -33.33333
category: Psicobiología/Tema1
preview_chars: 500
http:
  addr: "127.0.0.1:9090"
  cors_origins:
    - https://campus.example.edu
`)
	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, -33.33333, cfg.WrongScore)
	assert.Equal(t, "Psicobiología/Tema1", cfg.Category)
	assert.Equal(t, 500, cfg.PreviewChars)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://campus.example.edu"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "giftgen.yaml", "wrong_score: -25\ncategory: FromFile\n")
	t.Setenv("GIFTGEN_WRONG_SCORE", "-50")
	t.Setenv("GIFTGEN_CATEGORY", "FromEnv")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, -50.0, cfg.WrongScore)
	assert.Equal(t, "FromEnv", cfg.Category)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("GIFTGEN_WRONG_SCORE", "-50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("wrong-score", "-10", "")
	flags.String("category", "", "")
	require.NoError(t, flags.Parse([]string{"--wrong-score=-5", "--category=Unit1"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, -5.0, cfg.WrongScore)
	assert.Equal(t, "Unit1", cfg.Category)
}

func TestLoad_UnchangedFlagKeepsEnv(t *testing.T) {
	t.Setenv("GIFTGEN_WRONG_SCORE", "-20")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("wrong-score", "-10", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, -20.0, cfg.WrongScore)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "penalty outside enumerated set", content: "wrong_score: -15\n"},
		{name: "positive penalty", content: "wrong_score: 10\n"},
		{name: "negative preview", content: "preview_chars: -1\n"},
		{name: "unknown format", content: "format: pdf\n"},
		{name: "address without port", content: "http:\n  addr: localhost\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "giftgen.yaml", tt.content)
			_, err := config.Load(path, nil)
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
