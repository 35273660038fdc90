package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bomstock/pkg/config"
	"github.com/matzehuels/bomstock/pkg/history"
)

// openHistory opens the run history store; tests replace it.
var openHistory = history.Open

const defaultHistoryLimit = 10

// historyCommand creates the history command, which lists earlier lookups
// of one part number from the run history.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		uri   string
		limit int64
	)

	cmd := &cobra.Command{
		Use:     "history <mpn>",
		Short:   "Show recorded lookups of one part number",
		Example: `  bomstock history LM358DR --history-uri mongodb://localhost:27017`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfigWith((*config.Config).ValidateHistory, func(cfg *config.Config) {
				if uri != "" {
					cfg.Run.HistoryURI = uri
				}
			})
			if err != nil {
				return err
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			store, err := openHistory(ctx, cfg.Run.HistoryURI)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close(ctx)

			lookups, err := store.Latest(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(lookups) == 0 {
				printInfo("No recorded lookups for %s", args[0])
				return nil
			}
			printHistory(lookups)
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "history-uri", "", "MongoDB holding the run history (mongodb://...)")
	cmd.Flags().Int64VarP(&limit, "limit", "n", defaultHistoryLimit, "number of lookups to show")
	return cmd
}
