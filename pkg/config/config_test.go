package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

func noEnv(string) (string, bool) { return "", false }

func mapEnv(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Run.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Run.Workers)
	}
	if cfg.Run.Pattern != DefaultPattern {
		t.Errorf("Pattern = %q", cfg.Run.Pattern)
	}
	if cfg.Run.Timeout.Duration != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Run.Timeout)
	}
	loc := cfg.DigiKeyLocale()
	if loc.Site != "BE" || loc.Language != "en" || loc.Currency != "EUR" {
		t.Errorf("DigiKeyLocale() = %+v", loc)
	}
	if got := cfg.DigiKey.PackageTypes; len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 6 {
		t.Errorf("PackageTypes = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bomstock.toml", `
[digikey]
site = "DE"
currency = "USD"
package_types = [2]

[run]
workers = 4
timeout = "5s"
token_cache = "redis://localhost:6379/0"
`)

	if _, err := Load(Options{File: path, EnvFile: filepath.Join(dir, "missing.env"), LookupEnv: noEnv}); err == nil {
		t.Fatal("expected error for explicit missing env file")
	}

	cfg, err := Load(Options{File: path, EnvFile: writeFile(t, dir, ".env", ""), LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DigiKey.Site != "DE" || cfg.DigiKey.Currency != "USD" {
		t.Errorf("locale = %+v", cfg.DigiKeyLocale())
	}
	if cfg.DigiKey.Language != "en" {
		t.Errorf("Language = %q, want default en", cfg.DigiKey.Language)
	}
	if len(cfg.DigiKey.PackageTypes) != 1 {
		t.Errorf("PackageTypes = %v", cfg.DigiKey.PackageTypes)
	}
	if cfg.Run.Workers != 4 || cfg.Run.Timeout.Duration != 5*time.Second {
		t.Errorf("run = %+v", cfg.Run)
	}
	if cfg.Run.TokenCache != "redis://localhost:6379/0" {
		t.Errorf("TokenCache = %q", cfg.Run.TokenCache)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.toml"), LookupEnv: noEnv})
	if !bserrors.Is(err, bserrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.toml", "[run\nworkers = ")
	_, err := Load(Options{File: path, EnvFile: writeFile(t, dir, ".env", ""), LookupEnv: noEnv})
	if !bserrors.Is(err, bserrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bomstock.toml", `
[mouser]
api_key = "from-file"

[digikey]
client_id = "file-id"
client_secret = "file-secret"
`)
	envFile := writeFile(t, dir, ".env", "DIGIKEY_CLIENT_ID=dotenv-id\nDIGIKEY_CLIENT_SECRET=dotenv-secret\n")

	cfg, err := Load(Options{
		File:      path,
		EnvFile:   envFile,
		LookupEnv: mapEnv(map[string]string{EnvDigiKeyClientSecret: "process-secret"}),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Mouser.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want from-file", cfg.Mouser.APIKey)
	}
	if cfg.DigiKey.ClientID != "dotenv-id" {
		t.Errorf("ClientID = %q, want dotenv-id", cfg.DigiKey.ClientID)
	}
	if cfg.DigiKey.ClientSecret != "process-secret" {
		t.Errorf("ClientSecret = %q, want process-secret", cfg.DigiKey.ClientSecret)
	}
}

func TestLoadDotenvDoesNotTouchProcessEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "BOMSTOCK_HISTORY_URI=mongodb://example:27017\n")
	t.Setenv(EnvHistoryURI, "")
	os.Unsetenv(EnvHistoryURI)

	cfg, err := Load(Options{EnvFile: envFile, LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Run.HistoryURI != "mongodb://example:27017" {
		t.Errorf("HistoryURI = %q", cfg.Run.HistoryURI)
	}
	if _, ok := os.LookupEnv(EnvHistoryURI); ok {
		t.Error("dotenv values leaked into the process environment")
	}
}

func validConfig() *Config {
	cfg := Default()
	cfg.Mouser.APIKey = "m"
	cfg.DigiKey.ClientID = "id"
	cfg.DigiKey.ClientSecret = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing mouser key", func(c *Config) { c.Mouser.APIKey = "" }, EnvMouserAPIKey},
		{"missing client id", func(c *Config) { c.DigiKey.ClientID = "" }, EnvDigiKeyClientID},
		{"missing secret", func(c *Config) { c.DigiKey.ClientSecret = "" }, EnvDigiKeyClientSecret},
		{"bad currency", func(c *Config) { c.DigiKey.Currency = "EURO" }, "currency"},
		{"bad language", func(c *Config) { c.DigiKey.Language = "" }, "language"},
		{"bad site", func(c *Config) { c.DigiKey.Site = "Belgium" }, "site"},
		{"no package types", func(c *Config) { c.DigiKey.PackageTypes = nil }, "package_types"},
		{"zero workers", func(c *Config) { c.Run.Workers = 0 }, "workers"},
		{"too many workers", func(c *Config) { c.Run.Workers = MaxWorkers + 1 }, "workers"},
		{"zero timeout", func(c *Config) { c.Run.Timeout.Duration = 0 }, "timeout"},
		{"bad base url", func(c *Config) { c.Mouser.BaseURL = "ftp://mouser" }, "mouser base_url"},
		{"hostless url", func(c *Config) { c.DigiKey.BaseURL = "https://" }, "digikey base_url"},
		{"empty pattern", func(c *Config) { c.Run.Pattern = "" }, "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !bserrors.Is(err, bserrors.ErrCodeInvalidConfig) {
				t.Fatalf("Validate() = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	err := Default().Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{EnvMouserAPIKey, EnvDigiKeyClientID, EnvDigiKeyClientSecret, "3 problems"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestValidateDigiKeyIgnoresMouser(t *testing.T) {
	cfg := validConfig()
	cfg.Mouser.APIKey = ""
	cfg.Run.Workers = 0
	if err := cfg.ValidateDigiKey(); err != nil {
		t.Errorf("ValidateDigiKey() = %v, want nil", err)
	}

	cfg.DigiKey.ClientSecret = ""
	err := cfg.ValidateDigiKey()
	if !bserrors.Is(err, bserrors.ErrCodeInvalidConfig) {
		t.Fatalf("ValidateDigiKey() = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), EnvDigiKeyClientSecret) || strings.Contains(err.Error(), EnvMouserAPIKey) {
		t.Errorf("ValidateDigiKey() = %q, want only the DigiKey problem", err)
	}
}

func TestValidateHistory(t *testing.T) {
	for _, uri := range []string{"", "none"} {
		cfg := Default()
		cfg.Run.HistoryURI = uri
		if err := cfg.ValidateHistory(); !bserrors.Is(err, bserrors.ErrCodeInvalidConfig) {
			t.Errorf("ValidateHistory(%q) = %v, want INVALID_CONFIG", uri, err)
		}
	}
	cfg := Default()
	cfg.Run.HistoryURI = "mongodb://localhost:27017"
	if err := cfg.ValidateHistory(); err != nil {
		t.Errorf("ValidateHistory() = %v, want nil", err)
	}
}
