package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/studiowebux/examcli/internal/types"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix prefixes every environment override (EXAMCLI_API_BASE_URL, ...)
	EnvPrefix = "EXAMCLI"
)

var (
	// ConfigDir is the global configuration directory (~/.examcli)
	ConfigDir string

	// DatabasePath is the SQLite database file for recently viewed exams
	DatabasePath string

	// LogFile receives structured logs while the TUI owns the terminal
	LogFile string

	// SettingsFile is the YAML settings file
	SettingsFile string
)

const defaultSettings = `api:
  base_url: http://localhost:8080
  timeout: 30s
ui:
  default_tab: preparing
  message_timeout: 5s
log:
  level: info
`

// Settings is the resolved configuration
type Settings struct {
	API APISettings `mapstructure:"api"`
	UI  UISettings  `mapstructure:"ui"`
	Log LogSettings `mapstructure:"log"`
}

// APISettings configures the backend client
type APISettings struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	Token              string        `mapstructure:"token"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	CAFile             string        `mapstructure:"ca_file"`
	CertFile           string        `mapstructure:"cert_file"`
	KeyFile            string        `mapstructure:"key_file"`
}

// UISettings configures the TUI
type UISettings struct {
	DefaultTab     string        `mapstructure:"default_tab"`
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
}

// LogSettings configures logging
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Initialize sets up the configuration directory and files
// It creates ~/.examcli/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		ConfigDir = dir
	} else {
		ConfigDir = filepath.Join(homeDir, ".examcli")
	}
	return initializeIn(ConfigDir)
}

func initializeIn(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "examcli.db")
	LogFile = filepath.Join(ConfigDir, "examcli.log")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettings), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// Load reads settings from SettingsFile with EXAMCLI_ environment overrides
func Load() (Settings, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.token", "")
	v.SetDefault("api.insecure_skip_verify", false)
	v.SetDefault("api.ca_file", "")
	v.SetDefault("api.cert_file", "")
	v.SetDefault("api.key_file", "")
	v.SetDefault("ui.default_tab", string(types.StatusPreparing))
	v.SetDefault("ui.message_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")
	if SettingsFile != "" {
		v.SetConfigFile(SettingsFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if SettingsFile != "" {
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values that would otherwise fail late
func (s Settings) Validate() error {
	if strings.TrimSpace(s.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if _, err := types.ParseStatus(s.UI.DefaultTab); err != nil {
		return fmt.Errorf("ui.default_tab: %w", err)
	}
	return nil
}

// DefaultTab returns the validated default tab
func (s Settings) DefaultTab() types.Status {
	tab, err := types.ParseStatus(s.UI.DefaultTab)
	if err != nil {
		return types.StatusPreparing
	}
	return tab
}

// TLS returns the TLS settings, or nil when none are configured
func (s Settings) TLS() *types.TLSConfig {
	a := s.API
	if !a.InsecureSkipVerify && a.CAFile == "" && a.CertFile == "" && a.KeyFile == "" {
		return nil
	}
	return &types.TLSConfig{
		InsecureSkipVerify: a.InsecureSkipVerify,
		CAFile:             expandHome(a.CAFile),
		CertFile:           expandHome(a.CertFile),
		KeyFile:            expandHome(a.KeyFile),
	}
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
