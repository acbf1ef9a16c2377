// Package config loads config.yaml from the weekendly config directory.
// Values resolve in this order: CLI flags, WEEKENDLY_* environment
// variables, config.yaml, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/weekendly/internal/constants"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	KeyBackend     = "backend"
	KeyStorePath   = "store_path"
	KeySlotStepMin = "slot_step_min"
	KeyDebug       = "debug"
	KeyCatalogPath = "catalog_path"
	KeyLogLevel    = "log_level"
)

type Config struct {
	ConfigDir   string
	Backend     string
	StorePath   string
	SlotStepMin int
	Debug       bool
	CatalogPath string
	LogLevel    string

	// storeDefaulted is set when StorePath came from DefaultStorePath
	storeDefaulted bool
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DefaultStorePath is where a file backend keeps its data inside configDir.
func DefaultStorePath(configDir, backend string) string {
	switch backend {
	case constants.BackendSQLite:
		return filepath.Join(configDir, constants.AppName+".db")
	default:
		return filepath.Join(configDir, "data")
	}
}

// Load reads configDir/config.yaml. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	dir, err := ExpandHome(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(KeyBackend, constants.BackendDiskv)
	v.SetDefault(KeySlotStepMin, constants.DefaultSlotStepMin)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyCatalogPath, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		ConfigDir:   dir,
		Backend:     strings.ToLower(v.GetString(KeyBackend)),
		StorePath:   v.GetString(KeyStorePath),
		SlotStepMin: v.GetInt(KeySlotStepMin),
		Debug:       v.GetBool(KeyDebug),
		CatalogPath: v.GetString(KeyCatalogPath),
		LogLevel:    v.GetString(KeyLogLevel),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override applies non-zero flag values on top of the loaded config.
func (c *Config) Override(backend, storePath string, debug bool) error {
	if backend != "" {
		c.Backend = strings.ToLower(backend)
		if c.storeDefaulted {
			c.StorePath = ""
		}
	}
	if storePath != "" {
		c.StorePath = storePath
		c.storeDefaulted = false
	}
	if debug {
		c.Debug = true
	}
	return c.normalize()
}

func (c *Config) normalize() error {
	switch c.Backend {
	case constants.BackendDiskv, constants.BackendSQLite, constants.BackendPostgres, constants.BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q in config (expected diskv, sqlite, postgres or memory)", c.Backend)
	}
	if c.SlotStepMin <= 0 || constants.MinutesPerDay%c.SlotStepMin != 0 {
		return fmt.Errorf("slot_step_min must divide a day evenly, got %d", c.SlotStepMin)
	}
	for _, p := range []*string{&c.StorePath, &c.CatalogPath} {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	if c.StorePath == "" && c.Backend != constants.BackendPostgres {
		c.StorePath = DefaultStorePath(c.ConfigDir, c.Backend)
		c.storeDefaulted = true
	}
	return nil
}
