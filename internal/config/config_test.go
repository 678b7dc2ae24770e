package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "valid inline token", cfg: Config{Path: "a.xls", Token: "secret"}},
		{name: "valid token file", cfg: Config{Path: "a.xls", TokenFile: "/run/token"}},
		{name: "missing path", cfg: Config{Token: "secret"}, field: "path"},
		{name: "blank path", cfg: Config{Path: "   ", Token: "secret"}, field: "path"},
		{name: "missing token", cfg: Config{Path: "a.xls"}, field: "tkn"},
		{name: "negative timeout", cfg: Config{Path: "a.xls", Token: "x", Timeout: -time.Second}, field: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestValidateConnectionIgnoresPath(t *testing.T) {
	if err := (&Config{Token: "secret"}).ValidateConnection(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Config{Path: "a.xls"}).ValidateConnection(); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{APIURL: " https://api.example.com/ "}
	cfg.ApplyDefaults()

	if cfg.APIURL != "https://api.example.com" {
		t.Fatalf("unexpected api url: %q", cfg.APIURL)
	}
	if cfg.ResumeDir != DefaultResumeDir {
		t.Fatalf("unexpected resume dir: %q", cfg.ResumeDir)
	}

	empty := Config{}
	empty.ApplyDefaults()
	if empty.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", empty.APIURL)
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Reason: "no accounts"}
	if err.Error() != "configuration: no accounts" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = &ConfigurationError{Field: "path", Reason: "required"}
	if err.Error() != "configuration: path: required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
