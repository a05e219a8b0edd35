// SPDX-License-Identifier: Apache-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/output"
)

// ErrInvalidConfig is returned when resolved settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

//go:embed schema.cue
var schemaSource string

// Config holds every setting of the converter and its front ends.
type Config struct {
	// WrongScore is the distractor weight, one of gift.Penalties.
	WrongScore   float64    `mapstructure:"wrong_score"`
	Category     string     `mapstructure:"category"`
	PreviewChars int        `mapstructure:"preview_chars"`
	Output       string     `mapstructure:"output"`
	Format       string     `mapstructure:"format"`
	HTTP         HTTPConfig `mapstructure:"http"`
}

// HTTPConfig configures the upload server.
type HTTPConfig struct {
	Addr           string   `mapstructure:"addr"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// envBindings maps config keys to the environment variables read for them.
var envBindings = map[string]string{
	"wrong_score":           "GIFTGEN_WRONG_SCORE",
	"category":              "GIFTGEN_CATEGORY",
	"preview_chars":         "GIFTGEN_PREVIEW_CHARS",
	"output":                "GIFTGEN_OUTPUT",
	"format":                "GIFTGEN_FORMAT",
	"http.addr":             "GIFTGEN_HTTP_ADDR",
	"http.max_upload_bytes": "GIFTGEN_HTTP_MAX_UPLOAD_BYTES",
	"http.cors_origins":     "GIFTGEN_HTTP_CORS_ORIGINS",
}

// flagBindings maps config keys to command line flag names.
var flagBindings = map[string]string{
	"wrong_score":   "wrong-score",
	"category":      "category",
	"preview_chars": "preview-chars",
	"output":        "output",
	"format":        "format",
	"http.addr":     "addr",
}

// Load resolves settings from defaults, the optional config file at path,
// GIFTGEN_* environment variables and flags, in increasing precedence.
// Flags missing from flags are ignored, so each command binds only its own.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("wrong_score", float64(gift.DefaultPenalty))
	vip.SetDefault("category", "")
	vip.SetDefault("preview_chars", output.DefaultPreviewChars)
	vip.SetDefault("output", output.DefaultFilename)
	vip.SetDefault("format", "")
	vip.SetDefault("http.addr", ":8080")
	vip.SetDefault("http.max_upload_bytes", 10<<20)
	vip.SetDefault("http.cors_origins", []string{"http://localhost:3000"})

	for key, env := range envBindings {
		if err := vip.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := vip.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		log.Printf("[Config] Loaded settings from %s", vip.ConfigFileUsed())
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings against the embedded CUE schema and the
// accepted wrong-answer weights.
func (c *Config) Validate() error {
	cctx := cuecontext.New()
	schema := cctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(cctx.Encode(c.asMap()))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, cueerrors.Details(err, nil))
	}

	if _, err := c.Options(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options returns the conversion options described by the settings.
func (c *Config) Options() (gift.Options, error) {
	opts := gift.Options{
		Penalty:  gift.Penalty(c.WrongScore),
		Category: c.Category,
	}
	if err := opts.Validate(); err != nil {
		return gift.Options{}, err
	}
	return opts, nil
}

func (c *Config) asMap() map[string]any {
	origins := c.HTTP.CORSOrigins
	if origins == nil {
		origins = []string{}
	}
	return map[string]any{
		"wrong_score":   c.WrongScore,
		"category":      c.Category,
		"preview_chars": c.PreviewChars,
		"output":        c.Output,
		"format":        c.Format,
		"http": map[string]any{
			"addr":             c.HTTP.Addr,
			"max_upload_bytes": c.HTTP.MaxUploadBytes,
			"cors_origins":     origins,
		},
	}
}
