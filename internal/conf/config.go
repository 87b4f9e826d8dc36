// Package conf defines the application settings and loads them with viper.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// LogConfig contains settings for the rotating application log.
type LogConfig struct {
	Enabled bool   // true to enable file logging
	Path    string // path to log file
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // name of this node, can be used to identify the source of imports
	Log  LogConfig // log settings
}

// ImportSettings contains settings for the events import.
type ImportSettings struct {
	SourceURL    string // URL of the remote events API
	Timeout      int    // HTTP timeout in seconds for the fetch and image downloads
	PollInterval int    // polling interval in minutes for the schedule command
	ImageDir     string // directory where imported event images are written
}

// SQLiteSettings contains settings for the SQLite output backend.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to SQLite database file
}

// MySQLSettings contains settings for the MySQL output backend.
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL output
	Username string // MySQL username
	Password string // MySQL password
	Host     string // MySQL host
	Port     string // MySQL port
	Database string // MySQL database name
}

// OutputSettings contains the storage backend settings.
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite output settings
	MySQL  MySQLSettings  // MySQL output settings
}

// Settings contains all runtime settings for the importer.
type Settings struct {
	Debug  bool // true to enable debug mode
	Main   MainSettings
	Import ImportSettings
	Output OutputSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and returns the populated Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config file present, defaults apply
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// ValidateSettings checks the loaded settings for basic consistency.
func ValidateSettings(settings *Settings) error {
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return fmt.Errorf("only one output backend can be enabled, got both SQLite and MySQL")
	}
	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return fmt.Errorf("no output backend enabled, enable either SQLite or MySQL")
	}
	if settings.Import.SourceURL == "" {
		return fmt.Errorf("import source URL cannot be empty")
	}
	if settings.Import.PollInterval <= 0 {
		return fmt.Errorf("import poll interval must be positive, got %d", settings.Import.PollInterval)
	}
	return nil
}

// Setting returns the current settings instance, loading them on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})
	return settingsInstance
}

// GetDefaultConfigPaths returns the config file search paths in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user home directory: %w", err)
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", "eksponent-events"),
	}, nil
}

// HTTPTimeout returns the configured HTTP timeout as a duration.
func (s *ImportSettings) HTTPTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
