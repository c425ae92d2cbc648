// Package config loads the mdflat configuration file.
//
// The file is TOML. Every key is optional; missing keys keep their defaults.
// A few settings can be overridden from the environment:
//   - MDFLAT_MENTION_URL: overrides mention_url
//   - MDFLAT_LOG_LEVEL: overrides log.level
//   - MDFLAT_LOG_FORMAT: overrides log.format
//   - NO_COLOR: forces preview.color to "never"
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/growler/go-mdflat"
	"github.com/growler/go-mdflat/internal/logging"
)

// Config represents the complete mdflat configuration.
type Config struct {
	// Extension toggles applied over the defaults, e.g. "-footnote"
	Extensions []string `toml:"extensions"`
	// Prefix of mention links
	MentionURL string `toml:"mention_url"`
	UnsafeHTML bool   `toml:"unsafe_html"`
	HardWraps  bool   `toml:"hard_wraps"`
	XHTML      bool   `toml:"xhtml"`

	Output  OutputConfig  `toml:"output"`
	Preview PreviewConfig `toml:"preview"`
	Log     LogConfig     `toml:"log"`
}

// OutputConfig controls the fold command output.
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `toml:"format"`
}

// PreviewConfig controls terminal rendering.
type PreviewConfig struct {
	// CodeStyle names a chroma style
	CodeStyle string `toml:"code_style"`
	// Width in cells; 0 uses the terminal width
	Width int `toml:"width"`
	// Color is "auto", "always" or "never"
	Color string `toml:"color"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MentionURL: mdflat.DefaultConf.MentionURL,
		Output:     OutputConfig{Format: "text"},
		Preview: PreviewConfig{
			CodeStyle: "monokai",
			Color:     "auto",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Path returns the default location of the configuration file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mdflat", "config.toml"), nil
}

// Load reads the configuration from path over the defaults, applies
// environment overrides and validates the result. An empty path loads the
// default location if a file exists there.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		if p, err := Path(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Decode parses TOML text over the receiver.
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}
	return undecoded(md)
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if err := undecoded(md); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func undecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MDFLAT_MENTION_URL"); v != "" {
		c.MentionURL = v
	}
	if v := os.Getenv("MDFLAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MDFLAT_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Preview.Color = "never"
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, f string, a ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(f, a...)})
	}

	if err := c.Markdown().Validate(); err != nil {
		add("extensions", "%v", err)
	}
	if u, err := url.Parse(c.MentionURL); err != nil || (c.MentionURL != "" && !u.IsAbs()) {
		add("mention_url", "%q is not an absolute URL", c.MentionURL)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		add("output.format", "invalid format %q, must be one of: text, json", c.Output.Format)
	}
	if _, ok := styles.Registry[c.Preview.CodeStyle]; !ok {
		add("preview.code_style", "unknown style %q", c.Preview.CodeStyle)
	}
	if c.Preview.Width < 0 {
		add("preview.width", "must not be negative")
	}
	switch c.Preview.Color {
	case "auto", "always", "never":
	default:
		add("preview.color", "invalid value %q, must be one of: auto, always, never", c.Preview.Color)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "%v", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		add("log.format", "%v", err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Markdown returns the parser configuration.
func (c *Config) Markdown() mdflat.Conf {
	conf := mdflat.DefaultConf
	conf.Ext = append([]string(nil), c.Extensions...)
	if c.MentionURL != "" {
		conf = conf.WithMentionURL(c.MentionURL)
	}
	if c.UnsafeHTML {
		conf = conf.WithUnsafe()
	}
	if c.HardWraps {
		conf = conf.WithHardWraps()
	}
	if c.XHTML {
		conf = conf.WithXHTML()
	}
	return conf
}

// Logging returns the parsed log level and format. Invalid values fall back
// to the defaults; Validate reports them.
func (c *Config) Logging() (logging.Level, logging.Format) {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)
	return level, format
}
