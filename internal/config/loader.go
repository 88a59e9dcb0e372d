package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead of
// searching .deadscan/ under the root directory.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DEADSCAN_*)
// 2. Config file (.deadscan/config.yml or .deadscan/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".deadscan"))
	}

	v.SetEnvPrefix("DEADSCAN")
	v.AutomaticEnv()
	// DEADSCAN_FILES_EXCLUDE_DIRS, DEADSCAN_SYMBOLS_CONFIG_NAME, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("files.exclude_dirs")
	v.BindEnv("files.entry_markers")
	v.BindEnv("files.entry_filenames")
	v.BindEnv("files.source_extensions")
	v.BindEnv("files.resolve_suffixes")
	v.BindEnv("files.report_exclude")
	v.BindEnv("symbols.config_name")
	v.BindEnv("symbols.skip_dirs")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars still apply.
		// An explicit --config path that does not exist is not.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("files.exclude_dirs", defaults.Files.ExcludeDirs)
	v.SetDefault("files.entry_markers", defaults.Files.EntryMarkers)
	v.SetDefault("files.entry_filenames", defaults.Files.EntryFilenames)
	v.SetDefault("files.source_extensions", defaults.Files.SourceExtensions)
	v.SetDefault("files.resolve_suffixes", defaults.Files.ResolveSuffixes)
	v.SetDefault("files.report_exclude", defaults.Files.ReportExclude)

	v.SetDefault("symbols.config_name", defaults.Symbols.ConfigName)
	v.SetDefault("symbols.skip_dirs", defaults.Symbols.SkipDirs)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
