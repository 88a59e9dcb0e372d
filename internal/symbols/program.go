// Package symbols implements the symbol scanner: it parses every source file
// of a TypeScript/JavaScript program and reports function-like declarations
// that are never referenced beyond their own declaration.
package symbols

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/tailscale/hujson"
)

var (
	tsExtensions = []string{".ts", ".tsx"}
	jsExtensions = []string{".js", ".jsx"}

	defaultInclude = []string{"**/*"}
	defaultExclude = []string{"node_modules", "bower_components", "jspm_packages"}
)

// Options configures program discovery.
type Options struct {
	ConfigName string   // e.g. "tsconfig.json"
	SkipDirs   []string // directory names never descended into
}

// Program is the set of source files selected by a project configuration.
type Program struct {
	ConfigPath string
	RootDir    string   // directory containing the configuration
	Files      []string // absolute paths, sorted
}

// tsConfig is the subset of tsconfig.json that selects program files.
type tsConfig struct {
	Extends         extendsList `json:"extends"`
	Files           []string    `json:"files"`
	Include         []string    `json:"include"`
	Exclude         []string    `json:"exclude"`
	CompilerOptions struct {
		AllowJs *bool  `json:"allowJs"`
		OutDir  string `json:"outDir"`
	} `json:"compilerOptions"`
}

// extendsList accepts both forms of "extends": a single path or an array.
type extendsList []string

func (e *extendsList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*e = extendsList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("extends must be a string or an array of strings: %w", err)
	}
	*e = many
	return nil
}

// projectConfig is a tsconfig with its base configs applied. Paths are
// absolute and slash-separated; nil lists mean the setting was never given.
type projectConfig struct {
	files   []string
	include []string
	exclude []string
	allowJs *bool
	outDir  string
}

// FindConfig walks upward from startDir looking for a file named name.
func FindConfig(startDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrConfigNotFound, name, startDir)
		}
		dir = parent
	}
}

// BuildProgram locates the nearest project configuration upward from startDir
// and collects the source files it selects. Declaration files and anything
// inside a skipped directory are never part of the program.
func BuildProgram(startDir string, opts Options) (*Program, error) {
	configPath, err := FindConfig(startDir, opts.ConfigName)
	if err != nil {
		return nil, err
	}

	cfg, err := loadProjectConfig(configPath, map[string]bool{})
	if err != nil {
		return nil, err
	}

	rootDir := filepath.Dir(configPath)
	sel, err := newFileSelector(cfg, rootDir)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern in %s: %w", configPath, err)
	}

	skip := make(map[string]bool, len(opts.SkipDirs)+1)
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}
	skip[".git"] = true

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	// "files" entries are taken as written, even outside include.
	for _, f := range cfg.files {
		path := filepath.FromSlash(f)
		if sel.isProgramSource(path) && !inSkippedDir(rootDir, path, skip) {
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				add(path)
			}
		}
	}

	if len(cfg.files) == 0 || cfg.include != nil {
		for _, walkRoot := range sel.walkRoots {
			if info, err := os.Stat(walkRoot); err != nil || !info.IsDir() {
				continue
			}
			err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if path != walkRoot && skip[d.Name()] {
						return filepath.SkipDir
					}
					return nil
				}
				if sel.isProgramSource(path) && sel.selects(filepath.ToSlash(path)) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to collect program files: %w", err)
			}
		}
	}

	sort.Strings(files)

	return &Program{
		ConfigPath: configPath,
		RootDir:    rootDir,
		Files:      files,
	}, nil
}

func readTSConfig(path string) (*tsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// tsconfig.json allows comments and trailing commas.
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := &tsConfig{}
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// loadProjectConfig reads the config at path and applies its base configs.
// Settings from a base are relative to the base's own directory; the config
// extending it replaces whole lists and overrides compiler options.
func loadProjectConfig(path string, visiting map[string]bool) (*projectConfig, error) {
	if visiting[path] {
		return nil, fmt.Errorf("circular extends chain through %s", path)
	}
	visiting[path] = true
	defer delete(visiting, path)

	raw, err := readTSConfig(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)

	pc := &projectConfig{}
	for _, spec := range raw.Extends {
		basePath, err := resolveExtends(dir, spec)
		if err != nil {
			return nil, err
		}
		base, err := loadProjectConfig(basePath, visiting)
		if err != nil {
			return nil, err
		}
		pc.merge(base)
	}

	if raw.Files != nil {
		pc.files = absoluteSpecs(dir, raw.Files)
	}
	if raw.Include != nil {
		pc.include = absoluteSpecs(dir, raw.Include)
	}
	if raw.Exclude != nil {
		pc.exclude = absoluteSpecs(dir, raw.Exclude)
	}
	if raw.CompilerOptions.AllowJs != nil {
		pc.allowJs = raw.CompilerOptions.AllowJs
	}
	if raw.CompilerOptions.OutDir != "" {
		pc.outDir = absoluteSpecs(dir, []string{raw.CompilerOptions.OutDir})[0]
	}
	return pc, nil
}

func (pc *projectConfig) merge(base *projectConfig) {
	if base.files != nil {
		pc.files = base.files
	}
	if base.include != nil {
		pc.include = base.include
	}
	if base.exclude != nil {
		pc.exclude = base.exclude
	}
	if base.allowJs != nil {
		pc.allowJs = base.allowJs
	}
	if base.outDir != "" {
		pc.outDir = base.outDir
	}
}

// resolveExtends finds the base config named by an "extends" entry: a path
// relative to the extending config, or a package under node_modules.
func resolveExtends(fromDir, spec string) (string, error) {
	var candidates []string
	if filepath.IsAbs(spec) || strings.HasPrefix(spec, ".") {
		base := spec
		if !filepath.IsAbs(base) {
			base = filepath.Join(fromDir, filepath.FromSlash(spec))
		}
		candidates = append(candidates, base, base+".json")
	} else {
		for dir := fromDir; ; {
			base := filepath.Join(dir, "node_modules", filepath.FromSlash(spec))
			candidates = append(candidates, base, base+".json", filepath.Join(base, "tsconfig.json"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, nil
		}
	}
	return "", fmt.Errorf("failed to find config %q extended from %s", spec, fromDir)
}

// absoluteSpecs anchors specs at dir and converts them to slash form.
func absoluteSpecs(dir string, specs []string) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		if filepath.IsAbs(spec) {
			out = append(out, filepath.ToSlash(filepath.Clean(spec)))
			continue
		}
		out = append(out, path.Join(filepath.ToSlash(dir), filepath.ToSlash(spec)))
	}
	return out
}

func inSkippedDir(rootDir, path string, skip map[string]bool) bool {
	rel, err := filepath.Rel(rootDir, filepath.Dir(path))
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skip[part] {
			return true
		}
	}
	return false
}

// fileSelector applies include/exclude globs and extension rules to absolute
// slash-separated paths.
type fileSelector struct {
	include    []glob.Glob
	exclude    []glob.Glob
	extensions []string
	walkRoots  []string // directories the include specs can match under
}

func newFileSelector(cfg *projectConfig, rootDir string) (*fileSelector, error) {
	include := cfg.include
	if include == nil {
		include = absoluteSpecs(rootDir, defaultInclude)
	}
	exclude := cfg.exclude
	if exclude == nil {
		exclude = absoluteSpecs(rootDir, defaultExclude)
		if cfg.outDir != "" {
			exclude = append(exclude, cfg.outDir)
		}
	}

	sel := &fileSelector{extensions: append([]string{}, tsExtensions...)}
	if cfg.allowJs != nil && *cfg.allowJs {
		sel.extensions = append(sel.extensions, jsExtensions...)
	}

	var err error
	if sel.include, err = compileSpecs(include); err != nil {
		return nil, err
	}
	if sel.exclude, err = compileSpecs(exclude); err != nil {
		return nil, err
	}
	sel.walkRoots = walkRoots(include)
	return sel, nil
}

func (s *fileSelector) isProgramSource(path string) bool {
	if strings.HasSuffix(path, ".d.ts") {
		return false
	}
	ext := filepath.Ext(path)
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (s *fileSelector) selects(absPath string) bool {
	return matchAny(s.include, absPath) && !matchAny(s.exclude, absPath)
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// splitSpec separates the literal directory prefix of an absolute spec from
// the part that holds wildcards. A spec without wildcards or an extension
// names a directory and matches everything below it.
func splitSpec(spec string) (prefix, pattern string) {
	parts := strings.Split(spec, "/")
	for i, part := range parts {
		if strings.ContainsAny(part, "*?") {
			return strings.Join(parts[:i], "/"), strings.Join(parts[i:], "/")
		}
	}
	if path.Ext(spec) == "" {
		return spec, "**/*"
	}
	return path.Dir(spec), path.Base(spec)
}

// compileSpecs compiles include/exclude specs. The literal prefix is quoted so
// directory names are never read as glob syntax. "**/" may match zero
// directories, so every combination of keeping or dropping each "**/" is
// compiled.
func compileSpecs(specs []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, spec := range specs {
		prefix, pattern := splitSpec(spec)
		for _, v := range expandGlobstars(pattern) {
			g, err := glob.Compile(glob.QuoteMeta(prefix)+"/"+v, '/')
			if err != nil {
				return nil, fmt.Errorf("%q: %w", spec, err)
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// expandGlobstars returns pattern with each "**/" segment both kept and
// removed, in every combination.
func expandGlobstars(pattern string) []string {
	i := strings.Index(pattern, "**/")
	if i < 0 || (i > 0 && pattern[i-1] != '/') {
		return []string{pattern}
	}
	head := pattern[:i]
	var out []string
	for _, rest := range expandGlobstars(pattern[i+3:]) {
		out = append(out, head+"**/"+rest, head+rest)
	}
	return out
}

// walkRoots returns the literal directories of the include specs, without
// any directory already covered by another.
func walkRoots(include []string) []string {
	var prefixes []string
	for _, spec := range include {
		prefix, _ := splitSpec(spec)
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	var roots []string
	for _, p := range prefixes {
		if n := len(roots); n > 0 && (p == roots[n-1] || strings.HasPrefix(p, roots[n-1]+"/")) {
			continue
		}
		roots = append(roots, p)
	}

	for i, r := range roots {
		roots[i] = filepath.FromSlash(r)
	}
	return roots
}
