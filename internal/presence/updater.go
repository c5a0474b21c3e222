// Package presence keeps the Discord rich presence in sync with the page
// selected in the credentials file.
package presence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/longkey1/notion-presence/internal/discord"
	"github.com/longkey1/notion-presence/internal/logger"
	"github.com/longkey1/notion-presence/internal/notion/types"
	"github.com/longkey1/notion-presence/internal/presence/config"
	"github.com/longkey1/notion-presence/internal/vault"
)

//go:generate mockgen -source=updater.go -destination=mock_presence/mock_presence.go -package=mock_presence
type Discord interface {
	Connect(ctx context.Context) error
	Connected() bool
	SetActivity(ctx context.Context, activity discord.Activity) error
	ClearActivity(ctx context.Context) error
	Close() error
}

// ClientFactory builds a Notion client for a token
type ClientFactory func(token string) (types.Client, error)

const (
	DetailsPrefix   = "📝 "
	StateWorking    = "Working on Notion"
	DetailsFallback = "Using Notion"
	StateFallback   = "Browsing"

	StatusConnected = "Connected to Discord"

	DefaultResolveTimeout = 15 * time.Second
)

// Options configures an Updater
type Options struct {
	Assets         discord.Assets
	ResolveTimeout time.Duration
	// TokenOverride replaces the stored Notion token without persisting it
	TokenOverride string
	NewClient     ClientFactory
	Now           func() time.Time
}

// Updater pushes the selected page to Discord
type Updater struct {
	discord Discord
	vault   *vault.Vault
	path    string
	opts    Options

	mu          sync.Mutex
	record      vault.Record
	client      types.Client
	clientToken string
	start       time.Time
	status      string
	presence    string
}

// NewUpdater creates an Updater for the record stored at path
func NewUpdater(d Discord, v *vault.Vault, path string, rec vault.Record, opts Options) *Updater {
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = DefaultResolveTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Updater{
		discord: d,
		vault:   v,
		path:    path,
		opts:    opts,
		record:  rec,
	}
}

// SetRecord replaces the record, typically after the file changed on disk
func (u *Updater) SetRecord(rec vault.Record) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.record = rec
}

// Record returns the current record
func (u *Updater) Record() vault.Record {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.record
}

// Status returns the last connection status message
func (u *Updater) Status() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

// Presence returns the last presence line shown to the user
func (u *Updater) Presence() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.presence
}

// Connect connects to Discord and starts the elapsed-time clock
func (u *Updater) Connect(ctx context.Context) error {
	if err := u.discord.Connect(ctx); err != nil {
		u.setStatus(fmt.Sprintf("Failed to connect: %v", err))
		logger.Warn("failed to connect to discord", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	u.mu.Lock()
	u.start = u.opts.Now()
	u.status = StatusConnected
	u.mu.Unlock()

	logger.Info(StatusConnected)
	return nil
}

// Refresh pushes the presence for the selected page, or the generic
// presence when nothing is selected or the page cannot be resolved. It
// returns the presence line shown to the user.
func (u *Updater) Refresh(ctx context.Context) (string, error) {
	if !u.discord.Connected() {
		u.setStatus(discord.ErrNotConnected.Error())
		return "", discord.ErrNotConnected
	}

	activity, shown := u.activity(ctx)
	if err := u.discord.SetActivity(ctx, activity); err != nil {
		u.setStatus(fmt.Sprintf("Error updating presence: %v", err))
		logger.Error("failed to update presence", err)
		return "", fmt.Errorf("failed to update presence: %w", err)
	}

	u.mu.Lock()
	changed := u.presence != shown
	u.presence = shown
	u.mu.Unlock()

	if changed {
		logger.Info(shown)
	}
	return shown, nil
}

// Clear removes the presence and resets the selected page so the next
// refresh does not restore it. The record is saved through the vault even
// when Discord could not be reached.
func (u *Updater) Clear(ctx context.Context) error {
	connected := u.discord.Connected()

	var clearErr error
	if connected {
		if err := u.discord.ClearActivity(ctx); err != nil {
			logger.Warn("failed to clear presence", map[string]interface{}{
				"error": err.Error(),
			})
			clearErr = fmt.Errorf("failed to clear presence: %w", err)
		}
	} else {
		logger.Debug("not connected to discord; only resetting selection")
	}

	u.mu.Lock()
	if connected && clearErr == nil {
		u.start = time.Time{}
		u.presence = "Presence: Cleared"
	}
	u.record.SelectedPageID = ""
	rec := u.record
	u.mu.Unlock()

	return errors.Join(clearErr, u.vault.Save(rec, u.path))
}

func (u *Updater) activity(ctx context.Context) (discord.Activity, string) {
	u.mu.Lock()
	rec := u.record
	start := u.start
	u.mu.Unlock()

	title, err := u.selectedTitle(ctx, rec)
	if err != nil {
		logger.Warn("failed to resolve selected page", map[string]interface{}{
			"page_id": rec.SelectedPageID,
			"error":   err.Error(),
		})
	}

	if title != "" {
		assets := u.opts.Assets
		return discord.Activity{
			Details:    DetailsPrefix + title,
			State:      StateWorking,
			Timestamps: discord.StartedAt(start),
			Assets:     &assets,
		}, "Presence: " + title
	}

	return discord.Activity{
		Details:    DetailsFallback,
		State:      StateFallback,
		Timestamps: discord.StartedAt(start),
		Assets: &discord.Assets{
			LargeImage: u.opts.Assets.LargeImage,
			LargeText:  u.opts.Assets.LargeText,
		},
	}, "Presence: " + DetailsFallback
}

func (u *Updater) selectedTitle(ctx context.Context, rec vault.Record) (string, error) {
	if rec.SelectedPageID == "" {
		return "", nil
	}

	client, err := u.notionClient(rec)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, u.opts.ResolveTimeout)
	defer cancel()

	ref, err := client.ResolvePage(ctx, rec.SelectedPageID)
	if err != nil {
		return "", err
	}
	return ref.Title, nil
}

// notionClient returns a client for the effective token, rebuilding it
// when the token changes.
func (u *Updater) notionClient(rec vault.Record) (types.Client, error) {
	token := u.opts.TokenOverride
	if token == "" {
		token = rec.NotionToken
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.client != nil && u.clientToken == token {
		return u.client, nil
	}
	if u.opts.NewClient == nil {
		return nil, fmt.Errorf("no notion client configured")
	}
	client, err := u.opts.NewClient(token)
	if err != nil {
		return nil, err
	}
	u.client = client
	u.clientToken = token
	return client, nil
}

func (u *Updater) setStatus(status string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
}

// AssetsFromSettings returns the presence images configured in settings
func AssetsFromSettings(s *config.Settings) discord.Assets {
	return discord.Assets{
		LargeImage: s.LargeImage,
		LargeText:  s.LargeText,
		SmallImage: s.SmallImage,
		SmallText:  s.SmallText,
	}
}
