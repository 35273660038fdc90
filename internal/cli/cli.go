// Package cli implements the bomstock command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bomstock/pkg/buildinfo"
	"github.com/matzehuels/bomstock/pkg/cache"
	"github.com/matzehuels/bomstock/pkg/config"
	"github.com/matzehuels/bomstock/pkg/distributor"
	"github.com/matzehuels/bomstock/pkg/distributor/digikey"
	"github.com/matzehuels/bomstock/pkg/distributor/mouser"
	"github.com/matzehuels/bomstock/pkg/enrich"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bomstock"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level. At debug level the HTTP and
// lookup hooks log every request.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bomstock adds distributor pricing and stock to a BOM",
		Long:         `bomstock looks up every part number of a bill-of-materials CSV at Mouser and DigiKey and writes a copy with unit price, package type, stock and lookup time per distributor.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ./"+config.DefaultFile+" if present)")

	// Register all subcommands
	root.AddCommand(c.enrichCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Setup Helpers
// =============================================================================

// loadConfig reads the configuration, applies command-line overrides and
// validates everything an enrichment run needs.
func (c *CLI) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	return c.loadConfigWith((*config.Config).Validate, overrides...)
}

// loadConfigWith is loadConfig with a narrower validation for commands that
// touch only part of the configuration.
func (c *CLI) loadConfigWith(validate func(*config.Config) error, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: c.configFile})
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tokenOptions selects where the DigiKey token is cached.
type tokenOptions struct {
	location string // --token-cache, overrides the config
	noCache  bool
}

func (o *tokenOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.location, "token-cache", "", "token cache: directory, redis://host/db, or none (default ~/.cache/bomstock)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "do not cache the DigiKey access token")
}

// openTokenCache opens the token cache backend. An unusable default
// directory disables caching rather than failing the run.
func (c *CLI) openTokenCache(ctx context.Context, cfg *config.Config, opts tokenOptions) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	location := opts.location
	if location == "" {
		location = cfg.Run.TokenCache
	}
	if location == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("token cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		location = dir
	}
	return cache.Open(ctx, location)
}

// sources builds the Mouser and DigiKey sources in column order.
func (c *CLI) sources(cfg *config.Config, tokens *digikey.TokenProvider) []enrich.Source {
	httpClient := distributor.NewHTTPClient(cfg.Run.Timeout.Duration)

	m := enrich.NewMouserSource(mouser.NewClient(cfg.Mouser.BaseURL, cfg.Mouser.APIKey, httpClient))
	d := enrich.NewDigiKeySource(
		digikey.NewClient(cfg.DigiKey.BaseURL, cfg.DigiKey.ClientID, cfg.DigiKeyLocale(), httpClient),
		tokens,
		cfg.DigiKey.PackageTypes,
		c.Logger,
	)
	return []enrich.Source{m, d}
}

// tokenProvider creates the DigiKey token provider over backend.
func tokenProvider(cfg *config.Config, backend cache.Cache) *digikey.TokenProvider {
	return digikey.NewTokenProvider(
		cfg.DigiKey.BaseURL,
		cfg.DigiKey.ClientID,
		cfg.DigiKey.ClientSecret,
		backend,
		distributor.NewHTTPClient(cfg.Run.Timeout.Duration),
	)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bomstock/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
