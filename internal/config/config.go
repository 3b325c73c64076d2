// Package config loads the YAML configuration of the openssl-go command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coinbase/openssl-go/pkg/openssl/cms"
	"github.com/coinbase/openssl-go/pkg/openssl/logging"
)

// Config is the command configuration. Zero fields in a loaded file keep
// the values from Default.
type Config struct {
	// LoadOpenSSLConfig makes libcrypto read openssl.cnf at startup.
	LoadOpenSSLConfig bool `yaml:"load_openssl_config"`

	Log   LogSettings   `yaml:"log"`
	DSA   DSASettings   `yaml:"dsa"`
	CMS   CMSSettings   `yaml:"cms"`
	Trust TrustSettings `yaml:"trust"`
}

// LogSettings selects the slog handler.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// DSASettings holds key generation defaults.
type DSASettings struct {
	Bits int `yaml:"bits"`
}

// CMSSettings holds defaults for cms sign and encrypt.
type CMSSettings struct {
	// Cipher is an OpenSSL cipher name used by encrypt.
	Cipher string `yaml:"cipher"`
	// Flags are extra cms.Flags names applied to every operation.
	Flags []string `yaml:"flags"`
}

// TrustSettings lists the trust anchors used for verification.
type TrustSettings struct {
	DefaultPaths bool     `yaml:"default_paths"`
	CAFiles      []string `yaml:"ca_files"`
	CADir        string   `yaml:"ca_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogSettings{Level: "info", Format: "text"},
		DSA:   DSASettings{Bits: 2048},
		CMS:   CMSSettings{Cipher: cms.DefaultCipher},
		Trust: TrustSettings{},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.DSA.Bits < 512 {
		return fmt.Errorf("dsa.bits must be at least 512, got %d", c.DSA.Bits)
	}
	if c.CMS.Cipher == "" {
		return fmt.Errorf("cms.cipher is required")
	}
	if _, err := c.CMSFlags(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log.level %q", c.Log.Level)
}

// CMSFlags parses CMS.Flags.
func (c *Config) CMSFlags() (cms.Flags, error) {
	return cms.ParseFlags(c.CMS.Flags)
}

// NewLogger builds the logger described by Log, writing to w.
func (c *Config) NewLogger(w io.Writer) (logging.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if c.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return logging.New(slog.New(h)), nil
}
