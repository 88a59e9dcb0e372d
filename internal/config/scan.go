package config

import (
	"github.com/mvp-joe/deadscan/internal/reachability"
	"github.com/mvp-joe/deadscan/internal/symbols"
)

// ToScannerConfig converts the files section to a reachability.Config.
// The rootDir parameter specifies the project root to scan.
func (c *Config) ToScannerConfig(rootDir string) reachability.Config {
	return reachability.Config{
		RootDir:          rootDir,
		IgnorePatterns:   c.Files.IgnorePatterns(),
		SourceExtensions: c.Files.SourceExtensions,
		EntryMarkers:     c.Files.EntryMarkers,
		EntryFilenames:   c.Files.EntryFilenames,
		ResolveSuffixes:  c.Files.ResolveSuffixes,
		ReportExclude:    c.Files.ReportExclude,
	}
}

// ToSymbolOptions converts the symbols section to symbols.Options.
func (c *Config) ToSymbolOptions() symbols.Options {
	return symbols.Options{
		ConfigName: c.Symbols.ConfigName,
		SkipDirs:   c.Symbols.SkipDirs,
	}
}
