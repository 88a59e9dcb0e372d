// Package reachability implements the structural scanner: it collects source
// files under a project root, follows relative imports from entry points and
// reports files that nothing reaches.
package reachability

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileNode is a source file discovered under the project root.
type FileNode struct {
	Path string // absolute path
	Ext  string // extension including the leading dot, e.g. ".tsx"
}

// newFileNode builds a FileNode from an absolute path.
func newFileNode(path string) FileNode {
	return FileNode{Path: path, Ext: filepath.Ext(path)}
}

// ImportEdge is a raw import string found in a file's text.
type ImportEdge struct {
	From string // absolute path of the importing file
	Raw  string // import specifier exactly as written, e.g. "./b" or "react"
}

// IsRelative reports whether the specifier is resolved against the importing file.
func (e ImportEdge) IsRelative() bool {
	return strings.HasPrefix(e.Raw, ".")
}

// Set holds the absolute paths known to be reachable from entry points.
// It only ever grows.
type Set map[string]struct{}

// Add inserts path and reports whether it was newly added.
func (s Set) Add(path string) bool {
	if _, ok := s[path]; ok {
		return false
	}
	s[path] = struct{}{}
	return true
}

// Contains reports whether path is reachable.
func (s Set) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns the members in sorted order.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Stats summarizes a reachability run.
type Stats struct {
	Entries    int // files seeded as entry points
	Visited    int // files dequeued and scanned
	Resolved   int // relative imports that resolved to a file
	External   int // package-style imports (never resolved)
	Unresolved int // relative imports with no matching file
	ReadErrors int // files that could not be read
}
