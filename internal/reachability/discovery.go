package reachability

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// CollectFiles walks the scanner's root and returns every file with a source
// extension, skipping ignored directories. Each call is a fresh traversal.
func (s *Scanner) CollectFiles() ([]FileNode, error) {
	files := []FileNode{}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			// An unreadable subtree only makes the scan less complete.
			log.Printf("Warning: failed to read %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && s.shouldIgnoreDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isSourceFile(path) {
			return nil
		}

		files = append(files, newFileNode(path))
		return nil
	})

	return files, err
}

// shouldIgnoreDir checks if a directory matches any ignore pattern.
// "node_modules" should match pattern "node_modules/**", so the directory is
// tested with a /** suffix.
func (s *Scanner) shouldIgnoreDir(relPath string) bool {
	withSuffix := relPath + "/**"
	for _, cp := range s.ignore {
		if cp.glob.Match(withSuffix) || cp.glob.Match(relPath) {
			return true
		}
	}
	return false
}

func (s *Scanner) isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range s.cfg.SourceExtensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
