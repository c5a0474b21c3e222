package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/presence/config"
	"github.com/longkey1/notion-presence/internal/vault"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Show current configuration settings.

Displays the effective settings from environment variables and the
settings file, and the state of the stored credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(out io.Writer) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	rec := loadRecord(newVault(), s)
	stored := readStoredRecord(s.CredentialsFile)

	fmt.Fprintln(out, "Current Configuration")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Backend:         %s\n", s.Backend)
	fmt.Fprintf(out, "Poll interval:   %s\n", s.PollInterval)
	fmt.Fprintf(out, "Resolve timeout: %s\n", s.ResolveTimeout)
	fmt.Fprintf(out, "Concurrency:     %d\n", s.Concurrency)
	fmt.Fprintf(out, "Log level:       %s\n", s.LogLevel)
	fmt.Fprintf(out, "Large image:     %s (%s)\n", s.LargeImage, s.LargeText)
	fmt.Fprintf(out, "Small image:     %s (%s)\n", s.SmallImage, s.SmallText)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Credentials")
	fmt.Fprintln(out, "-----------")
	fmt.Fprintf(out, "Token:           %s\n", describeSecret(rec.NotionToken, stored.NotionToken))
	fmt.Fprintf(out, "Client ID:       %s\n", describeSecret(rec.ClientID, stored.ClientID))
	if rec.SelectedPageID != "" {
		fmt.Fprintf(out, "Selected page:   %s\n", rec.SelectedPageID)
	} else {
		fmt.Fprintln(out, "Selected page:   (none)")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Sources")
	fmt.Fprintln(out, "-------")

	for _, key := range []string{
		config.EnvPrefix + "_BACKEND",
		config.EnvPrefix + "_TOKEN",
		"NOTION_TOKEN",
		config.EnvPrefix + "_POLL_INTERVAL",
		config.EnvPrefix + "_LOG_LEVEL",
		config.EnvPrefix + "_CREDENTIALS_FILE",
	} {
		if os.Getenv(key) != "" {
			fmt.Fprintf(out, "%-32s set\n", key+":")
		}
	}

	if s.SettingsFile != "" {
		fmt.Fprintf(out, "%-32s %s\n", "Settings file:", s.SettingsFile)
	} else {
		fmt.Fprintf(out, "%-32s (not found)\n", "Settings file:")
	}
	fmt.Fprintf(out, "%-32s %s\n", "Credentials file:", s.CredentialsFile)

	return nil
}

// readStoredRecord returns the credentials as they are on disk
func readStoredRecord(path string) vault.Record {
	var rec vault.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec
	}
	_ = json.Unmarshal(data, &rec)
	return rec
}

// describeSecret masks a secret and reports how it is stored
func describeSecret(value, stored string) string {
	if value == "" {
		return "(not set)"
	}
	state := "plaintext"
	if vault.IsEncrypted(stored) {
		state = "encrypted"
	}
	return fmt.Sprintf("%s (%s)", maskToken(value), state)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
