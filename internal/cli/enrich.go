package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bomstock/pkg/bom"
	"github.com/matzehuels/bomstock/pkg/config"
	"github.com/matzehuels/bomstock/pkg/enrich"
	"github.com/matzehuels/bomstock/pkg/history"
	"github.com/matzehuels/bomstock/pkg/report"
)

// enrichOptions holds the flags of the enrich command.
type enrichOptions struct {
	pattern    string
	output     string
	xlsx       bool
	report     string
	historyURI string
	workers    int
	token      tokenOptions
}

// enrichCommand creates the enrich command.
func (c *CLI) enrichCommand() *cobra.Command {
	var opts enrichOptions

	cmd := &cobra.Command{
		Use:   "enrich [file]",
		Short: "Add Mouser and DigiKey pricing and stock to a BOM",
		Long: `Look up every MPN of a BOM CSV at Mouser and DigiKey and write a copy with
eight extra columns: unit price, package type, quantity available and last
update for each distributor.

Without a file argument the first match of --pattern in the working
directory is used. Rows that need manual checking are listed at the end.`,
		Example: `  bomstock enrich
  bomstock enrich board_v3_BOM.csv --xlsx --report review.yaml
  bomstock enrich --workers 4 --token-cache redis://localhost:6379/0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runEnrich(cmd.Context(), cmd, input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "glob used to find the BOM when no file is given (default "+config.DefaultPattern+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV path (default <input>_availability.csv)")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write <output>.xlsx")
	cmd.Flags().StringVar(&opts.report, "report", "", "save the review list to a .json or .yaml file")
	cmd.Flags().StringVar(&opts.historyURI, "history-uri", "", "record lookups in MongoDB (mongodb://...)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "rows processed in parallel (default 1)")
	opts.token.register(cmd)

	return cmd
}

func (c *CLI) runEnrich(ctx context.Context, cmd *cobra.Command, input string, opts enrichOptions) error {
	cfg, err := c.loadConfig(func(cfg *config.Config) {
		if cmd.Flags().Changed("workers") {
			cfg.Run.Workers = opts.workers
		}
		if opts.pattern != "" {
			cfg.Run.Pattern = opts.pattern
		}
		if opts.historyURI != "" {
			cfg.Run.HistoryURI = opts.historyURI
		}
	})
	if err != nil {
		return err
	}
	if opts.report != "" {
		if _, err := report.FormatFor(opts.report); err != nil {
			return err
		}
	}

	if input == "" {
		input, err = bom.Discover(".", cfg.Run.Pattern)
		if err != nil {
			return err
		}
	}
	sheet, err := bom.Load(input)
	if err != nil {
		return err
	}
	printInfo("Loaded %s (%d rows)", input, sheet.Len())

	store, err := openHistory(ctx, cfg.Run.HistoryURI)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close(context.WithoutCancel(ctx))

	tokenCache, err := c.openTokenCache(ctx, cfg, opts.token)
	if err != nil {
		return fmt.Errorf("open token cache: %w", err)
	}
	defer tokenCache.Close()

	runner := enrich.NewRunner(c.Logger, c.sources(cfg, tokenProvider(cfg, tokenCache))...)
	runner.Workers = cfg.Run.Workers

	spinner := newSpinnerWithContext(ctx, "Fetching DigiKey access token...")
	spinner.Start()
	runner.Prepare(ctx)
	spinner.Stop()

	prog := newProgress(c.Logger)
	rep, err := runner.Run(ctx, sheet)
	if err != nil {
		return err
	}
	prog.done("enrichment finished", "rows", len(rep.Rows))

	out, err := sheet.Append(rep.Columns())
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = bom.OutputPath(input, ".csv")
	}
	if err := bom.WriteCSV(output, out); err != nil {
		return err
	}

	issues := rep.Issues()
	printNewline()
	printSuccess("Updated CSV saved")
	printFile(output)

	if opts.xlsx {
		xlsxPath := bom.OutputPath(input, ".xlsx")
		if opts.output != "" {
			xlsxPath = strings.TrimSuffix(opts.output, filepath.Ext(opts.output)) + ".xlsx"
		}
		if err := bom.WriteXLSX(xlsxPath, out); err != nil {
			return err
		}
		printFile(xlsxPath)
	}

	runID := history.NewRunID()
	if err := store.Save(ctx, history.Lookups(runID, input, rep)); err != nil {
		c.Logger.Warn("could not record run history", "err", err)
	}

	if opts.report != "" {
		if err := report.Save(opts.report, report.New(runID, input, output, rep)); err != nil {
			return err
		}
		printFile(opts.report)
	}

	printSummary(len(rep.Rows), len(issues))
	printReviewList(issues)
	return nil
}
