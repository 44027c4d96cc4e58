package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpshade/pocket-debrief/internal/errors"
	"gopkg.in/yaml.v3"
)

// EnvDataDir overrides the default data directory
const EnvDataDir = "DEBRIEF_DIR"

const configFile = "config.yaml"

// Supported values for DateLocale
const (
	LocaleEnglish  = "en"
	LocaleJapanese = "ja"
)

// Supported values for Theme
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds user settings. Only display and prompting preferences live
// here; the journal itself is kept by the storage package.
type Config struct {
	// DateLocale selects how entry dates are shown in the log list
	DateLocale string `yaml:"date_locale"`
	// Theme forces a light or dark palette instead of detecting it
	Theme string `yaml:"theme"`
	// ConfirmDestructive makes the CLI ask before clearing or deleting
	ConfirmDestructive bool `yaml:"confirm_destructive"`

	dataDir string
}

// Default returns the built-in settings for dataDir
func Default(dataDir string) *Config {
	return &Config{
		DateLocale:         LocaleEnglish,
		Theme:              ThemeAuto,
		ConfirmDestructive: true,
		dataDir:            dataDir,
	}
}

// ResolveDataDir picks the data directory: an explicit path wins, then the
// DEBRIEF_DIR environment variable, then ~/.pocket-debrief
func ResolveDataDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pocket-debrief"), nil
}

// Load reads <dataDir>/config.yaml. A missing file yields the defaults; a
// malformed file also yields the defaults and is noted in the error log.
func Load(dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(cfg.Path())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		errors.LogWarning("ignoring malformed %s: %v", cfg.Path(), err)
		return Default(dataDir), nil
	}
	cfg.normalize()

	return cfg, nil
}

// Save writes the settings back to <dataDir>/config.yaml
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.Path(), data, 0644)
}

// DataDir returns the directory holding the journal, config and logs
func (c *Config) DataDir() string {
	return c.dataDir
}

// Path returns the location of the config file
func (c *Config) Path() string {
	return filepath.Join(c.dataDir, configFile)
}

// DateLayout returns the time layout used to show entry dates
func (c *Config) DateLayout() string {
	switch c.DateLocale {
	case LocaleJapanese:
		return "2006年1月2日"
	default:
		return "Jan 2, 2006"
	}
}

// GlamourStyle returns the forced glamour style, or "" to auto-detect.
// GLAMOUR_STYLE in the environment takes precedence over the config file.
func (c *Config) GlamourStyle() string {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return style
	}
	if c.Theme == ThemeDark || c.Theme == ThemeLight {
		return c.Theme
	}
	return ""
}

func (c *Config) normalize() {
	c.DateLocale = strings.ToLower(strings.TrimSpace(c.DateLocale))
	if c.DateLocale != LocaleJapanese {
		c.DateLocale = LocaleEnglish
	}

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		c.Theme = ThemeAuto
	}
}
