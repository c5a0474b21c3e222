package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName names the configuration directory
	AppName = "notion-presence"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "NOTION_PRESENCE"

	// SettingsFileName is the name of the settings file
	SettingsFileName = "settings"
	// SettingsFileType is the type of the settings file
	SettingsFileType = "toml"

	// CredentialsFileName is the name of the vault-managed credentials file
	CredentialsFileName = "config.json"
)

// Backend selects the Notion client implementation
type Backend string

const (
	// BackendAPI is the built-in REST client
	BackendAPI Backend = "api"
	// BackendNotionAPI is the jomei/notionapi SDK client
	BackendNotionAPI Backend = "notionapi"
)

// Settings holds the non-secret application settings
type Settings struct {
	Backend         Backend       `mapstructure:"backend"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	ResolveTimeout  time.Duration `mapstructure:"resolve_timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
	LogLevel        string        `mapstructure:"log_level"`
	CredentialsFile string        `mapstructure:"credentials_file"`

	LargeImage string `mapstructure:"large_image"`
	LargeText  string `mapstructure:"large_text"`
	SmallImage string `mapstructure:"small_image"`
	SmallText  string `mapstructure:"small_text"`

	// SettingsFile is the file the settings were read from, if any
	SettingsFile string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("backend", string(BackendAPI))
	v.SetDefault("poll_interval", "30s")
	v.SetDefault("resolve_timeout", "15s")
	v.SetDefault("concurrency", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("credentials_file", filepath.Join(configDir, CredentialsFileName))
	v.SetDefault("large_image", "notion")
	v.SetDefault("large_text", "Notion Discord Auto RPC")
	v.SetDefault("small_image", "active")
	v.SetDefault("small_text", "Active")
}

// Load loads settings from environment variables and the settings file.
// An empty path means <config dir>/settings.toml. A missing file yields
// defaults.
func Load(path string) (*Settings, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, configDir)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType(SettingsFileType)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.SettingsFile = v.ConfigFileUsed()
	if s.SettingsFile != "" {
		if _, err := os.Stat(s.SettingsFile); err != nil {
			s.SettingsFile = ""
		}
	}

	return &s, nil
}

// Validate checks if the settings are usable
func (s *Settings) Validate() error {
	switch s.Backend {
	case BackendAPI, BackendNotionAPI:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", s.Backend, BackendAPI, BackendNotionAPI)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", s.PollInterval)
	}
	if s.ResolveTimeout <= 0 {
		return fmt.Errorf("resolve_timeout must be positive, got %s", s.ResolveTimeout)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	if s.CredentialsFile == "" {
		return fmt.Errorf("credentials_file is required")
	}
	return nil
}

// TokenFromEnv returns a Notion token supplied through the environment.
// NOTION_PRESENCE_TOKEN takes precedence over NOTION_TOKEN.
func TokenFromEnv() string {
	if token := os.Getenv(EnvPrefix + "_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("NOTION_TOKEN")
}

// LoadDotEnv loads variables from a .env file if it exists
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// EnsureConfigDir ensures the configuration directory exists
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0700)
}
