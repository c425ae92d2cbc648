package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growler/go-mdflat"
	"github.com/growler/go-mdflat/internal/logging"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mdflat.DefaultConf, cfg.Markdown())
}

func TestDecode(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Decode(`
extensions  = ["-footnote", "+table"]
mention_url = "https://gitlab.com/"
unsafe_html = true

[output]
format = "json"

[preview]
code_style = "dracula"
width      = 80

[log]
level = "debug"
`))
	require.NoError(t, cfg.Validate())

	conf := cfg.Markdown()
	assert.False(t, conf.Enabled(mdflat.ExtFootnote))
	assert.True(t, conf.Enabled(mdflat.ExtTable))
	assert.Equal(t, "https://gitlab.com/", conf.MentionURL)
	assert.True(t, conf.Unsafe)
	assert.False(t, conf.HardWraps)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 80, cfg.Preview.Width)
	assert.Equal(t, "auto", cfg.Preview.Color)

	level, format := cfg.Logging()
	assert.Equal(t, logging.LevelDebug, level)
	assert.Equal(t, logging.FormatText, format)
}

func TestDecodeUnknownKey(t *testing.T) {
	err := Default().Decode("[preview]\ntheme = \"dark\"\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview.theme")
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		field  string
		modify func(*Config)
	}{
		{"extensions", func(c *Config) { c.Extensions = []string{"+emoji"} }},
		{"mention_url", func(c *Config) { c.MentionURL = "relative/path" }},
		{"output.format", func(c *Config) { c.Output.Format = "yaml" }},
		{"preview.code_style", func(c *Config) { c.Preview.CodeStyle = "no-such-style" }},
		{"preview.width", func(c *Config) { c.Preview.Width = -1 }},
		{"preview.color", func(c *Config) { c.Preview.Color = "sometimes" }},
		{"log.level", func(c *Config) { c.Log.Level = "loud" }},
		{"log.format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var errs ValidateErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("hard_wraps = true\n[log]\nformat = \"json\"\n"), 0o600))

	t.Setenv("MDFLAT_LOG_LEVEL", "error")
	t.Setenv("MDFLAT_MENTION_URL", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.HardWraps)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "error", cfg.Log.Level)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"yaml\"\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "never", cfg.Preview.Color)
}
