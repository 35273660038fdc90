package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bomstock/pkg/config"
)

// tokenCommand creates the token command for the DigiKey access token.
func (c *CLI) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the cached DigiKey access token",
	}

	cmd.AddCommand(c.tokenFetchCommand())
	cmd.AddCommand(c.tokenClearCommand())

	return cmd
}

// tokenFetchCommand creates the "token fetch" subcommand, which checks
// the DigiKey credentials and warms the cache.
func (c *CLI) tokenFetchCommand() *cobra.Command {
	var opts tokenOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Obtain a DigiKey access token and cache it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfigWith((*config.Config).ValidateDigiKey)
			if err != nil {
				return err
			}
			backend, err := c.openTokenCache(ctx, cfg, opts)
			if err != nil {
				return fmt.Errorf("open token cache: %w", err)
			}
			defer backend.Close()

			spinner := newSpinnerWithContext(ctx, "Fetching DigiKey access token...")
			spinner.Start()
			if _, err := tokenProvider(cfg, backend).Token(ctx); err != nil {
				spinner.StopWithError("Failed to obtain DigiKey access token")
				return err
			}
			spinner.StopWithSuccess("DigiKey access token ready")
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// tokenClearCommand creates the "token clear" subcommand.
func (c *CLI) tokenClearCommand() *cobra.Command {
	var opts tokenOptions

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached DigiKey access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfigWith((*config.Config).ValidateDigiKey)
			if err != nil {
				return err
			}
			backend, err := c.openTokenCache(ctx, cfg, opts)
			if err != nil {
				return fmt.Errorf("open token cache: %w", err)
			}
			defer backend.Close()

			if err := tokenProvider(cfg, backend).Forget(ctx); err != nil {
				return fmt.Errorf("forget token: %w", err)
			}
			printSuccess("Cleared cached DigiKey access token")
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
