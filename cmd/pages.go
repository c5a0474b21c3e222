package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/hierarchy"
	"github.com/longkey1/notion-presence/internal/presence"
	"github.com/longkey1/notion-presence/internal/presence/config"
	"github.com/longkey1/notion-presence/internal/vault"
)

type pagesOptions struct {
	format string
}

var pagesOpts = &pagesOptions{}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List shared pages as an outline",
	Long: `List every page shared with the integration, nested under its parent
page and sorted by title. The selected page is marked with "*".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPages(cmd, pagesOpts)
	},
}

func init() {
	pagesCmd.Flags().StringVarP(&pagesOpts.format, "format", "f", "table", "Output format: json, text, table")

	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, opts *pagesOptions) error {
	format, err := presence.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	rec := loadRecord(newVault(), s)
	entries, err := loadHierarchy(cmd.Context(), s, rec)
	if err != nil {
		return err
	}

	if len(entries) == 0 && format != presence.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "No pages found. Share pages with your integration in Notion.")
		return nil
	}

	return presence.NewFormatter(format, cmd.OutOrStdout()).FormatEntries(entries, rec.SelectedPageID)
}

// loadHierarchy resolves every shared page into a flattened outline
func loadHierarchy(ctx context.Context, s *config.Settings, rec vault.Record) ([]hierarchy.Entry, error) {
	client, err := newNotionClient(s, rec)
	if err != nil {
		return nil, err
	}

	resolver := hierarchy.NewResolver(hierarchy.Options{
		Concurrency: s.Concurrency,
		Timeout:     s.ResolveTimeout,
	})
	return resolver.Resolve(ctx, client)
}
