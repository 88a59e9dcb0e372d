package reachability

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config controls file discovery, entry-point detection and import resolution.
type Config struct {
	RootDir          string
	IgnorePatterns   []string // globs matched against slash-separated relative paths
	SourceExtensions []string
	EntryMarkers     []string
	EntryFilenames   []string
	ResolveSuffixes  []string
	ReportExclude    []string
}

// Scanner is the structural scanner for one project root.
type Scanner struct {
	cfg    Config
	root   string
	ignore []compiledPattern
}

// NewScanner creates a scanner rooted at cfg.RootDir.
func NewScanner(cfg Config) (*Scanner, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	ignore, err := compilePatterns(cfg.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	return &Scanner{
		cfg:    cfg,
		root:   root,
		ignore: ignore,
	}, nil
}

// Root returns the absolute project root.
func (s *Scanner) Root() string {
	return s.root
}

// Rel returns path relative to the project root, slash-separated.
func (s *Scanner) Rel(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// EntryPredicate decides whether a file is always reachable. It receives the
// slash-separated path relative to the project root.
type EntryPredicate func(relPath string) bool

// MarkerPredicate matches files whose relative path contains marker.
func MarkerPredicate(marker string) EntryPredicate {
	return func(relPath string) bool {
		return strings.Contains(relPath, marker)
	}
}

// FilenamePredicate matches files whose base name equals name.
func FilenamePredicate(name string) EntryPredicate {
	return func(relPath string) bool {
		return filepath.Base(relPath) == name
	}
}

// EntryPredicates returns the predicates built from the scanner's configured
// markers and filenames.
func (s *Scanner) EntryPredicates() []EntryPredicate {
	preds := make([]EntryPredicate, 0, len(s.cfg.EntryMarkers)+len(s.cfg.EntryFilenames))
	for _, m := range s.cfg.EntryMarkers {
		preds = append(preds, MarkerPredicate(m))
	}
	for _, name := range s.cfg.EntryFilenames {
		preds = append(preds, FilenamePredicate(name))
	}
	return preds
}

func matchesAny(relPath string, preds []EntryPredicate) bool {
	for _, p := range preds {
		if p(relPath) {
			return true
		}
	}
	return false
}
