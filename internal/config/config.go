package config

import "strings"

// Config represents the complete deadscan configuration.
// It can be loaded from .deadscan/config.yml with environment variable overrides.
type Config struct {
	Files   FilesConfig   `yaml:"files" mapstructure:"files"`
	Symbols SymbolsConfig `yaml:"symbols" mapstructure:"symbols"`
}

// FilesConfig configures the structural (file reachability) scanner.
type FilesConfig struct {
	ExcludeDirs      []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"`           // directory names never descended into
	EntryMarkers     []string `yaml:"entry_markers" mapstructure:"entry_markers"`         // path fragments marking route entry points
	EntryFilenames   []string `yaml:"entry_filenames" mapstructure:"entry_filenames"`     // base names always treated as entry points
	SourceExtensions []string `yaml:"source_extensions" mapstructure:"source_extensions"` // extensions considered source files
	ResolveSuffixes  []string `yaml:"resolve_suffixes" mapstructure:"resolve_suffixes"`   // suffixes tried, in order, on relative imports
	ReportExclude    []string `yaml:"report_exclude" mapstructure:"report_exclude"`       // path fragments never reported as unused
}

// SymbolsConfig configures the symbol (unused function) scanner.
type SymbolsConfig struct {
	ConfigName string   `yaml:"config_name" mapstructure:"config_name"` // project config searched upward, e.g. tsconfig.json
	SkipDirs   []string `yaml:"skip_dirs" mapstructure:"skip_dirs"`     // directory names whose files are never analyzed
}

// Default returns a configuration with the built-in defaults.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			ExcludeDirs: []string{
				"node_modules",
				".next",
				".git",
				"dist",
				"build",
			},
			EntryMarkers: []string{
				"app/",
				"pages/",
				"api/",
				"routes/",
			},
			EntryFilenames: []string{
				"next.config.js",
				"next.config.mjs",
				"tailwind.config.js",
				"postcss.config.js",
			},
			SourceExtensions: []string{".ts", ".tsx", ".js", ".jsx"},
			ResolveSuffixes: []string{
				".ts",
				".tsx",
				".js",
				".jsx",
				"/index.ts",
				"/index.tsx",
				"/index.js",
				"/index.jsx",
			},
			ReportExclude: []string{
				".test.",
				".spec.",
				".stories.",
				"__tests__/",
				".d.ts",
			},
		},
		Symbols: SymbolsConfig{
			ConfigName: "tsconfig.json",
			SkipDirs:   []string{"node_modules"},
		},
	}
}

// IgnorePatterns converts the excluded directory names into glob patterns
// matched against slash-separated relative paths.
func (c *FilesConfig) IgnorePatterns() []string {
	patterns := make([]string, 0, len(c.ExcludeDirs)*2)
	for _, dir := range c.ExcludeDirs {
		dir = strings.Trim(dir, "/")
		if dir == "" {
			continue
		}
		patterns = append(patterns, dir+"/**", "**/"+dir+"/**")
	}
	return patterns
}
