package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/discord"
	"github.com/longkey1/notion-presence/internal/presence"
)

const clearTimeout = 10 * time.Second

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the presence and the selected page",
	Long: `Clear the Discord presence and reset the selected page, so the daemon
falls back to the generic "Using Notion" presence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClear(cmd)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	v := newVault()
	rec := loadRecord(v, s)

	ctx, cancel := context.WithTimeout(cmd.Context(), clearTimeout)
	defer cancel()

	dc := discord.NewClient(rec.ClientID)
	defer dc.Close()

	updater := presence.NewUpdater(dc, v, s.CredentialsFile, rec, newUpdaterOptions(s))
	if rec.ClientID != "" {
		_ = updater.Connect(ctx)
	}

	if err := updater.Clear(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !dc.Connected() {
		fmt.Fprintln(out, "Selection cleared (Discord not reachable)")
		return nil
	}
	fmt.Fprintln(out, updater.Presence())
	return nil
}
