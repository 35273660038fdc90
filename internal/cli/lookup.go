package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bomstock/pkg/enrich"
)

// lookupCommand creates the lookup command, which queries both
// distributors for a single part number.
func (c *CLI) lookupCommand() *cobra.Command {
	var token tokenOptions

	cmd := &cobra.Command{
		Use:     "lookup <mpn>",
		Short:   "Look up one part number at Mouser and DigiKey",
		Example: `  bomstock lookup LM358DR`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			tokenCache, err := c.openTokenCache(ctx, cfg, token)
			if err != nil {
				return fmt.Errorf("open token cache: %w", err)
			}
			defer tokenCache.Close()

			runner := enrich.NewRunner(c.Logger, c.sources(cfg, tokenProvider(cfg, tokenCache))...)
			res := runner.Lookup(ctx, args[0])
			if err := ctx.Err(); err != nil {
				return err
			}

			printOutcomes(res)
			if res.Invalid {
				printNewline()
				printWarning("%s", enrich.ReasonInvalidMPN)
			}
			return nil
		},
	}

	token.register(cmd)
	return cmd
}
