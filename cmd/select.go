package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/hierarchy"
	"github.com/longkey1/notion-presence/internal/notion"
	"github.com/longkey1/notion-presence/internal/presence"
)

var selectCmd = &cobra.Command{
	Use:   "select [page_id]",
	Short: "Choose the page shown in Discord",
	Long: `Choose the page shown in Discord.

With a page ID or URL the page is resolved and selected directly. Without
one, the page outline is listed and a number is read from stdin. A running
daemon picks up the new selection immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return runSelect(cmd, arg)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, pageIDOrURL string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	v := newVault()
	rec := loadRecord(v, s)

	var id, title string
	if pageIDOrURL != "" {
		client, err := newNotionClient(s, rec)
		if err != nil {
			return err
		}
		page, err := client.ResolvePage(cmd.Context(), notion.ExtractPageID(pageIDOrURL))
		if err != nil {
			return fmt.Errorf("failed to get page: %w", err)
		}
		id, title = page.ID, page.Title
	} else {
		entries, err := loadHierarchy(cmd.Context(), s, rec)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no pages found; share pages with your integration in Notion")
		}

		if err := presence.NewFormatter(presence.FormatTable, out).FormatEntries(entries, rec.SelectedPageID); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSelect a page [1-%d]: ", len(entries))

		line, err := readLine(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return err
		}
		entry, err := pickEntry(entries, line)
		if err != nil {
			return err
		}
		id, title = entry.ID, entry.Title
	}

	rec.SelectedPageID = id
	if err := v.Save(rec, s.CredentialsFile); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	fmt.Fprintf(out, "Selected: %s\n", title)
	return nil
}

// pickEntry returns the entry for a 1-based choice
func pickEntry(entries []hierarchy.Entry, input string) (hierarchy.Entry, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(entries) {
		return hierarchy.Entry{}, fmt.Errorf("invalid choice %q: enter a number from 1 to %d", strings.TrimSpace(input), len(entries))
	}
	return entries[n-1], nil
}
