package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/logger"
	"github.com/longkey1/notion-presence/internal/notion"
	"github.com/longkey1/notion-presence/internal/presence/config"
	"github.com/longkey1/notion-presence/internal/vault"
)

type rootOptions struct {
	settingsFile string
	envFile      string
	logLevel     string
}

var rootOpts = &rootOptions{}

var rootCmd = &cobra.Command{
	Use:   "notion-presence",
	Short: "Show the Notion page you are working on in Discord",
	Long: `notion-presence shows the Notion page you are working on as your
Discord rich presence.

Run "notion-presence setup" once to store your Discord application ID and
Notion integration token, pick a page with "notion-presence select", then
start the daemon with "notion-presence run".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.settingsFile, "settings", "", "Settings file (default <config dir>/settings.toml)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.envFile, "env-file", ".env", "Environment file loaded before settings")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadSettings reads .env, settings and initializes logging
func loadSettings() (*config.Settings, error) {
	if err := config.LoadDotEnv(rootOpts.envFile); err != nil {
		return nil, err
	}

	s, err := config.Load(rootOpts.settingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if rootOpts.logLevel != "" {
		s.LogLevel = rootOpts.logLevel
	}
	if err := logger.Init(s.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newVault() *vault.Vault {
	return vault.New(vault.DefaultOptions(), nil)
}

// loadRecord loads the credentials file. A missing or corrupt file has
// already been replaced by defaults, so the error is only logged.
func loadRecord(v *vault.Vault, s *config.Settings) vault.Record {
	rec, err := v.Load(s.CredentialsFile)
	if err != nil {
		logger.Debug("using default credentials", map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return rec
}

// notionToken returns the token from the environment or the record
func notionToken(rec vault.Record) string {
	if token := config.TokenFromEnv(); token != "" {
		return token
	}
	return rec.NotionToken
}

func newNotionClient(s *config.Settings, rec vault.Record) (notion.Client, error) {
	token := notionToken(rec)
	if token == "" {
		return nil, fmt.Errorf("notion token is not set; run \"notion-presence setup\" or set NOTION_TOKEN")
	}
	client, err := notion.NewClient(s.Backend, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
