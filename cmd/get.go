package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/notion"
	"github.com/longkey1/notion-presence/internal/presence"
)

type getOptions struct {
	format string
}

var getOpts = &getOptions{}

var getCmd = &cobra.Command{
	Use:   "get <page_id>",
	Short: "Resolve a single Notion page",
	Long:  `Resolve a Notion page by its ID or URL and display its title and parent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(cmd, args[0], getOpts)
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "text", "Output format: json, text, table")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, pageIDOrURL string, opts *getOptions) error {
	format, err := presence.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	client, err := newNotionClient(s, loadRecord(newVault(), s))
	if err != nil {
		return err
	}

	page, err := client.ResolvePage(cmd.Context(), notion.ExtractPageID(pageIDOrURL))
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	return presence.NewFormatter(format, cmd.OutOrStdout()).FormatPage(page)
}
