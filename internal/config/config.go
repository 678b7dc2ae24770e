package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAPIURL    = "https://dev-100-api.huntflow.dev"
	DefaultResumeDir = "."
)

// Config is the merged result of flags, environment, .env and the optional config file.
type Config struct {
	Path      string        `mapstructure:"path"`
	Token     string        `mapstructure:"tkn"`
	TokenFile string        `mapstructure:"token-file"`
	APIURL    string        `mapstructure:"api-url"`
	ResumeDir string        `mapstructure:"resume-dir"`
	UserAgent string        `mapstructure:"user-agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Yes       bool          `mapstructure:"yes"`
}

// ConfigurationError reports a missing or unusable setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration: %s", e.Reason)
	}

	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ApplyDefaults fills empty optional settings.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")

	if strings.TrimSpace(c.ResumeDir) == "" {
		c.ResumeDir = DefaultResumeDir
	}
}

// Validate checks the settings the import command cannot start without.
// The token itself is resolved later through the secrets package, so either
// an inline token or a token file is enough here.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return &ConfigurationError{Field: "path", Reason: "path to the spreadsheet is required (--path)"}
	}

	return c.ValidateConnection()
}

// ValidateConnection checks only what is needed to talk to the API.
func (c *Config) ValidateConnection() error {
	if strings.TrimSpace(c.Token) == "" && strings.TrimSpace(c.TokenFile) == "" {
		return &ConfigurationError{Field: "tkn", Reason: "huntflow api token is required (--tkn or --token-file)"}
	}

	if c.Timeout < 0 {
		return &ConfigurationError{Field: "timeout", Reason: "must not be negative"}
	}

	return nil
}
