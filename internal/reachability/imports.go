package reachability

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Import detection is purely textual. Specifiers built from variables,
// e.g. import(`./locales/${lang}`), are not found.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

// ExtractImportStrings returns every import specifier found in the file, in
// pattern order, duplicates included. An unreadable file is logged and yields
// no imports.
func ExtractImportStrings(file string) []string {
	imports, _ := readImports(file)
	return imports
}

// readImports is ExtractImportStrings that also reports whether the file
// could be read.
func readImports(file string) ([]string, bool) {
	content, err := os.ReadFile(file)
	if err != nil {
		log.Printf("Warning: failed to read %s: %v", file, err)
		return []string{}, false
	}
	return matchImports(string(content)), true
}

func matchImports(content string) []string {
	imports := []string{}
	for _, re := range importPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			imports = append(imports, m[1])
		}
	}
	return imports
}

// ResolveImport maps a relative specifier to a file on disk. Package-style
// specifiers ("react", "@/lib/x") are external and never resolved.
func (s *Scanner) ResolveImport(raw, fromFile string) (FileNode, bool) {
	if !strings.HasPrefix(raw, ".") {
		return FileNode{}, false
	}

	base := filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(raw))

	// "./b.ts" already names the file.
	if s.isSourceFile(base) && isRegularFile(base) {
		return newFileNode(base), true
	}

	for _, suffix := range s.cfg.ResolveSuffixes {
		candidate := base + filepath.FromSlash(suffix)
		if isRegularFile(candidate) {
			return newFileNode(candidate), true
		}
	}

	if isDir(base) {
		for _, ext := range s.cfg.SourceExtensions {
			candidate := filepath.Join(base, "index"+ext)
			if isRegularFile(candidate) {
				return newFileNode(candidate), true
			}
		}
	}

	return FileNode{}, false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
