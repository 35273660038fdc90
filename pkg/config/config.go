// Package config loads and validates bomstock settings.
//
// Settings come from four layers, lowest precedence first:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (bomstock.toml in the working directory, or --config)
//  3. A .env file in the working directory
//  4. The process environment
//
// Secrets are normally supplied through the environment or .env:
//
//	MOUSER_API_KEY=...
//	DIGIKEY_CLIENT_ID=...
//	DIGIKEY_CLIENT_SECRET=...
//
// [Config.Validate] runs once at startup so a missing secret or an unknown
// currency fails before any row is processed.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/matzehuels/bomstock/pkg/distributor"
	"github.com/matzehuels/bomstock/pkg/distributor/digikey"
	"github.com/matzehuels/bomstock/pkg/distributor/mouser"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

const (
	// DefaultFile is read when no --config path is given and it exists.
	DefaultFile = "bomstock.toml"

	// DefaultEnvFile is read when it exists in the working directory.
	DefaultEnvFile = ".env"

	// DefaultPattern matches BOM exports such as board_v3_BOM.csv.
	DefaultPattern = "*_v*_BOM.csv"

	// MaxWorkers bounds --workers.
	MaxWorkers = 32
)

// Environment variable names.
const (
	EnvMouserAPIKey        = "MOUSER_API_KEY"
	EnvDigiKeyClientID     = "DIGIKEY_CLIENT_ID"
	EnvDigiKeyClientSecret = "DIGIKEY_CLIENT_SECRET"
	EnvMouserBaseURL       = "BOMSTOCK_MOUSER_BASE_URL"
	EnvDigiKeyBaseURL      = "BOMSTOCK_DIGIKEY_BASE_URL"
	EnvTokenCache          = "BOMSTOCK_TOKEN_CACHE"
	EnvHistoryURI          = "BOMSTOCK_HISTORY_URI"
)

// Config holds every setting of an enrichment run.
type Config struct {
	Mouser  MouserConfig  `toml:"mouser"`
	DigiKey DigiKeyConfig `toml:"digikey"`
	Run     RunConfig     `toml:"run"`
}

// MouserConfig configures the Mouser search client.
type MouserConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// DigiKeyConfig configures the DigiKey client and token exchange.
type DigiKeyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	BaseURL      string `toml:"base_url"`
	Site         string `toml:"site"`
	Language     string `toml:"language"`
	Currency     string `toml:"currency"`

	// PackageTypes lists the accepted PackageType ids, in no particular
	// order. Variation order in the response decides which one wins.
	PackageTypes []int `toml:"package_types"`
}

// RunConfig configures the orchestrator and its optional sinks.
type RunConfig struct {
	Pattern    string   `toml:"pattern"`
	Workers    int      `toml:"workers"`
	Timeout    Duration `toml:"timeout"`
	TokenCache string   `toml:"token_cache"`
	HistoryURI string   `toml:"history_uri"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings. Secrets are empty.
func Default() *Config {
	return &Config{
		Mouser: MouserConfig{
			BaseURL: mouser.DefaultBaseURL,
		},
		DigiKey: DigiKeyConfig{
			BaseURL:      digikey.DefaultBaseURL,
			Site:         digikey.DefaultLocale.Site,
			Language:     digikey.DefaultLocale.Language,
			Currency:     digikey.DefaultLocale.Currency,
			PackageTypes: append([]int(nil), digikey.DefaultPackageTypes...),
		},
		Run: RunConfig{
			Pattern: DefaultPattern,
			Workers: 1,
			Timeout: Duration{distributor.DefaultTimeout},
		},
	}
}

// Options controls where [Load] looks for its layers.
type Options struct {
	// File is the TOML path. Empty means DefaultFile if it exists.
	File string

	// EnvFile is the dotenv path. Empty means DefaultEnvFile if it exists.
	EnvFile string

	// LookupEnv reads the process environment. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds a Config from defaults, the TOML file, the .env file and the
// environment. It does not validate; call [Config.Validate].
func Load(opts Options) (*Config, error) {
	cfg := Default()

	file, explicit := opts.File, opts.File != ""
	if !explicit {
		file = DefaultFile
	}
	if err := cfg.loadFile(file, explicit); err != nil {
		return nil, err
	}

	envFile, explicit := opts.EnvFile, opts.EnvFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	dotenv, err := readDotenv(envFile, explicit)
	if err != nil {
		return nil, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return bserrors.Wrap(bserrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return bserrors.Wrap(bserrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

func readDotenv(path string, required bool) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, bserrors.Wrap(bserrors.ErrCodeFileNotFound, err, "env file %s", path)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, bserrors.Wrap(bserrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return vars, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Mouser.APIKey, EnvMouserAPIKey)
	set(&c.Mouser.BaseURL, EnvMouserBaseURL)
	set(&c.DigiKey.ClientID, EnvDigiKeyClientID)
	set(&c.DigiKey.ClientSecret, EnvDigiKeyClientSecret)
	set(&c.DigiKey.BaseURL, EnvDigiKeyBaseURL)
	set(&c.Run.TokenCache, EnvTokenCache)
	set(&c.Run.HistoryURI, EnvHistoryURI)
}

// Validate checks the settings needed for an enrichment run. All problems
// are reported together as one INVALID_CONFIG error.
func (c *Config) Validate() error {
	var v validator
	c.checkMouser(&v)
	c.checkDigiKey(&v)
	c.checkRun(&v)
	return v.err()
}

// ValidateDigiKey checks only the DigiKey section. Commands that manage the
// DigiKey token use it so they run without a Mouser key.
func (c *Config) ValidateDigiKey() error {
	var v validator
	c.checkDigiKey(&v)
	return v.err()
}

// ValidateHistory checks that a history store is configured.
func (c *Config) ValidateHistory() error {
	var v validator
	if c.Run.HistoryURI == "" || c.Run.HistoryURI == "none" {
		v.add("history_uri is not set (use --history-uri or %s)", EnvHistoryURI)
	}
	return v.err()
}

// validator collects problems so one run reports all of them.
type validator struct {
	problems []string
}

func (v *validator) add(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) err() error {
	if len(v.problems) > 0 {
		return bserrors.New(bserrors.ErrCodeInvalidConfig, "%s", joinProblems(v.problems))
	}
	return nil
}

func (c *Config) checkMouser(v *validator) {
	if c.Mouser.APIKey == "" {
		v.add("%s is not set", EnvMouserAPIKey)
	}
	if err := checkURL(c.Mouser.BaseURL); err != nil {
		v.add("mouser base_url: %v", err)
	}
}

func (c *Config) checkDigiKey(v *validator) {
	if c.DigiKey.ClientID == "" {
		v.add("%s is not set", EnvDigiKeyClientID)
	}
	if c.DigiKey.ClientSecret == "" {
		v.add("%s is not set", EnvDigiKeyClientSecret)
	}
	if err := checkURL(c.DigiKey.BaseURL); err != nil {
		v.add("digikey base_url: %v", err)
	}
	if _, err := currency.ParseISO(c.DigiKey.Currency); err != nil {
		v.add("digikey currency %q is not an ISO 4217 code", c.DigiKey.Currency)
	}
	if _, err := language.Parse(c.DigiKey.Language); err != nil {
		v.add("digikey language %q is not a valid language tag", c.DigiKey.Language)
	}
	if _, err := language.ParseRegion(c.DigiKey.Site); err != nil {
		v.add("digikey site %q is not a valid region code", c.DigiKey.Site)
	}
	if len(c.DigiKey.PackageTypes) == 0 {
		v.add("digikey package_types is empty")
	}
}

func (c *Config) checkRun(v *validator) {
	if c.Run.Workers < 1 || c.Run.Workers > MaxWorkers {
		v.add("workers must be between 1 and %d, got %d", MaxWorkers, c.Run.Workers)
	}
	if c.Run.Timeout.Duration <= 0 {
		v.add("timeout must be positive")
	}
	if c.Run.Pattern == "" {
		v.add("pattern is empty")
	}
}

// DigiKeyLocale returns the storefront selection for the DigiKey client.
func (c *Config) DigiKeyLocale() digikey.Locale {
	return digikey.Locale{
		Site:     c.DigiKey.Site,
		Language: c.DigiKey.Language,
		Currency: c.DigiKey.Currency,
	}
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https: %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host: %q", raw)
	}
	return nil
}

func joinProblems(p []string) string {
	if len(p) == 1 {
		return p[0]
	}
	s := fmt.Sprintf("%d problems:", len(p))
	for _, msg := range p {
		s += "\n  - " + msg
	}
	return s
}
