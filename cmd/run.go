package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/discord"
	"github.com/longkey1/notion-presence/internal/logger"
	"github.com/longkey1/notion-presence/internal/notion"
	"github.com/longkey1/notion-presence/internal/notion/types"
	"github.com/longkey1/notion-presence/internal/presence"
	"github.com/longkey1/notion-presence/internal/presence/config"
)

const shutdownTimeout = 3 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep Discord presence in sync with the selected page",
	Long: `Connect to the Discord desktop app and refresh the presence every
poll_interval. Changes to the credentials file (for example from
"notion-presence select") are applied immediately. The presence is cleared
on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(ctx context.Context) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	v := newVault()
	rec := loadRecord(v, s)
	if rec.ClientID == "" {
		return errors.New("discord client ID is not set; run \"notion-presence setup\"")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dc := discord.NewClient(rec.ClientID)
	updater := presence.NewUpdater(dc, v, s.CredentialsFile, rec, newUpdaterOptions(s))

	watcher, err := watchFile(s.CredentialsFile)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info("presence daemon started", map[string]interface{}{
		"credentials":   s.CredentialsFile,
		"poll_interval": s.PollInterval.String(),
		"backend":       string(s.Backend),
	})

	tick := func() {
		if !dc.Connected() {
			if err := updater.Connect(ctx); err != nil {
				return
			}
		}
		if _, err := updater.Refresh(ctx); err != nil {
			logger.Debug("refresh failed", map[string]interface{}{"error": err.Error()})
		}
	}

	tick()
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdown(dc)
			logger.Info("presence daemon stopped")
			return nil

		case <-ticker.C:
			tick()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("credentials watcher closed")
			}
			if !isCredentialsEvent(event, s.CredentialsFile) {
				continue
			}
			next, err := v.Read(s.CredentialsFile)
			if err != nil {
				logger.Warn("ignoring unreadable credentials file", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			if next.ClientID != updater.Record().ClientID {
				logger.Warn("discord client ID changed; restart to apply")
			}
			updater.SetRecord(next)
			logger.Debug("credentials reloaded", map[string]interface{}{
				"page_id": next.SelectedPageID,
			})
			tick()

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("credentials watcher closed")
			}
			logger.Warn("credentials watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func newUpdaterOptions(s *config.Settings) presence.Options {
	return presence.Options{
		Assets:         presence.AssetsFromSettings(s),
		ResolveTimeout: s.ResolveTimeout,
		TokenOverride:  config.TokenFromEnv(),
		NewClient: func(token string) (types.Client, error) {
			return notion.NewClient(s.Backend, token)
		},
	}
}

// watchFile watches the directory of path, since saves replace the file
// by rename.
func watchFile(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	return watcher, nil
}

func isCredentialsEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// shutdown clears the presence and closes the connection
func shutdown(dc *discord.Client) {
	if !dc.Connected() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := dc.ClearActivity(ctx); err != nil {
		logger.Warn("failed to clear presence", map[string]interface{}{"error": err.Error()})
	}
	if err := dc.Close(); err != nil {
		logger.Debug("failed to close discord connection", map[string]interface{}{"error": err.Error()})
	}
}
