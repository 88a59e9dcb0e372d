package symbols

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Symbol Scanner:
// - FindConfig finds tsconfig.json in the start directory or a parent
// - FindConfig/BuildProgram fail with ErrConfigNotFound when there is none
// - BuildProgram honors include/exclude/files, skips node_modules and .d.ts
// - BuildProgram only takes .js/.jsx files when allowJs is set
// - BuildProgram accepts tsconfig files with comments and trailing commas
// - BuildProgram follows extends: base paths are relative to the base file,
//   the extending config overrides lists and compiler options
// - BuildProgram rejects circular extends chains
// - Specs with several "**/" match zero or more directories at each one
// - A helper called from an exported function is not reported
// - A function with no call sites is reported with line and kind
// - Exported declarations are never reported, whatever their reference count
// - Exactly one reference is unused, two or more are used
// - Arrow and function-expression bindings are reported with their kind
// - Methods are counted across the program, destructured names included;
//   constructors and accessors are skipped
// - Script files share one scope across the program, modules do not
// - Components referenced from JSX are used
// - Analyze counts every program file and is stable across runs

const tsconfig = `{
  // comments are allowed
  "compilerOptions": {
    "strict": true,
  },
}`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func defaultOptions() Options {
	return Options{ConfigName: "tsconfig.json", SkipDirs: []string{"node_modules"}}
}

func runAnalysis(t *testing.T, files map[string]string) (string, *Analysis) {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)

	_, analysis, err := Run(context.Background(), root, defaultOptions(), nil)
	require.NoError(t, err)
	return root, analysis
}

func names(unused []UnusedSymbol) []string {
	out := make([]string, 0, len(unused))
	for _, u := range unused {
		out = append(out, u.Name)
	}
	return out
}

func TestFindConfig_WalksUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":       tsconfig,
		"src/features/a/x.ts": "",
	})

	path, err := FindConfig(filepath.Join(root, "src", "features", "a"), "tsconfig.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "tsconfig.json"), path)
}

func TestBuildProgram_MissingConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/a.ts": ""})

	_, err := BuildProgram(root, Options{ConfigName: "deadscan-missing-tsconfig.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestBuildProgram_SelectsFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":                  tsconfig,
		"index.ts":                       "",
		"src/app.tsx":                    "",
		"src/types.d.ts":                 "",
		"src/legacy.js":                  "",
		"node_modules/lib/index.ts":      "",
		"packages/x/node_modules/y/a.ts": "",
		"packages/x/src/b.ts":            "",
		"README.md":                      "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, root, prog.RootDir)
	assert.Equal(t, []string{
		filepath.Join(root, "index.ts"),
		filepath.Join(root, "packages", "x", "src", "b.ts"),
		filepath.Join(root, "src", "app.tsx"),
	}, prog.Files)
}

func TestBuildProgram_IncludeExcludeAndAllowJs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": `{
  "compilerOptions": { "allowJs": true, "outDir": "out" },
  "include": ["src", "scripts/*.ts"],
  "exclude": ["src/generated"],
  "files": ["tools/setup.ts"]
}`,
		"src/a.ts":             "",
		"src/nested/b.jsx":     "",
		"src/generated/api.ts": "",
		"scripts/build.ts":     "",
		"scripts/deep/skip.ts": "",
		"tools/setup.ts":       "",
		"tools/other.ts":       "",
		"root.ts":              "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "scripts", "build.ts"),
		filepath.Join(root, "src", "a.ts"),
		filepath.Join(root, "src", "nested", "b.jsx"),
		filepath.Join(root, "tools", "setup.ts"),
	}, prog.Files)
}

func TestBuildProgram_Extends(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.base.json": `{
  "compilerOptions": { "allowJs": true },
  "exclude": ["generated"],
}`,
		"tsconfig.json":  `{ "extends": "./tsconfig.base.json" }`,
		"src/a.js":       "",
		"src/b.ts":       "",
		"generated/g.ts": "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "a.js"),
		filepath.Join(root, "src", "b.ts"),
	}, prog.Files)
}

func TestBuildProgram_ExtendsPathsRelativeToBase(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"configs/base.json": `{
  "compilerOptions": { "allowJs": true },
  "include": ["../src"]
}`,
		"tsconfig.json": `{
  "extends": "./configs/base",
  "compilerOptions": { "allowJs": false }
}`,
		"src/a.ts":   "",
		"src/b.js":   "",
		"other/c.ts": "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "src", "a.ts")}, prog.Files)
}

func TestBuildProgram_ExtendsPackage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"node_modules/@acme/tsconfig/base.json": `{ "compilerOptions": { "allowJs": true } }`,
		"tsconfig.json":                         `{ "extends": ["@acme/tsconfig/base.json"] }`,
		"index.js":                              "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "index.js")}, prog.Files)
}

func TestBuildProgram_CircularExtends(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": `{ "extends": "./a.json" }`,
		"a.json":        `{ "extends": "./tsconfig.json" }`,
	})

	_, err := BuildProgram(root, defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular extends")
}

func TestBuildProgram_MultipleGlobstars(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":             `{ "include": ["src/**/components/**/*.ts"] }`,
		"src/components/a.ts":       "",
		"src/y/components/b.ts":     "",
		"src/components/x/c.ts":     "",
		"src/y/components/x/z/d.ts": "",
		"src/other/e.ts":            "",
		"components/f.ts":           "",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "components", "a.ts"),
		filepath.Join(root, "src", "components", "x", "c.ts"),
		filepath.Join(root, "src", "y", "components", "b.ts"),
		filepath.Join(root, "src", "y", "components", "x", "z", "d.ts"),
	}, prog.Files)
}

func TestAnalyze_HelperCalledFromExportedFunction(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"utils.ts":      `function helper() {
  return 42;
}

export function main() {
  helper();
}
`,
	})

	assert.Equal(t, 1, analysis.FilesAnalyzed)
	assert.Empty(t, analysis.Unused)
}

func TestAnalyze_FunctionWithoutCallSites(t *testing.T) {
	t.Parallel()

	root, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"lib/math.ts":   `// math helpers

function unused() { return 1; }
`,
	})

	require.Len(t, analysis.Unused, 1)
	assert.Equal(t, UnusedSymbol{
		Name: "unused",
		File: filepath.Join(root, "lib", "math.ts"),
		Line: 3,
		Kind: KindFunction,
	}, analysis.Unused[0])
}

func TestAnalyze_ExportedDeclarationsAreImmune(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"api.ts":        `export function neverCalled() {}
export default function alsoNeverCalled() {}
export const arrow = () => 1;
export const expr = function () { return 2; };
export async function* stream() {}
`,
	})

	assert.Empty(t, analysis.Unused)
}

func TestAnalyze_ReferenceThreshold(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"a.ts":          `function once() {}
function twice() {}
function thrice() {}
twice();
thrice(); thrice();
export const handlers = { twice };
`,
	})

	assert.Equal(t, []string{"once"}, names(analysis.Unused))
}

func TestAnalyze_ArrowAndFunctionExpressionBindings(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"b.ts":          `const idle = () => {};
const used = (x: number) => x * 2;
let legacy = function () {};
const value = 3;
export const total = used(value);
`,
	})

	require.Len(t, analysis.Unused, 2)
	assert.Equal(t, "idle", analysis.Unused[0].Name)
	assert.Equal(t, KindArrowFunction, analysis.Unused[0].Kind)
	assert.Equal(t, 1, analysis.Unused[0].Line)
	assert.Equal(t, "legacy", analysis.Unused[1].Name)
	assert.Equal(t, KindFunctionExpression, analysis.Unused[1].Kind)
	assert.Equal(t, 3, analysis.Unused[1].Line)
}

func TestAnalyze_Methods(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"service.ts":    `export class Service {
  private cache = new Map<string, number>();

  constructor() {}

  get size() { return this.cache.size; }

  load() { return this.fetchAll(); }

  private fetchAll() { return []; }

  private stale() {}

  refresh() {}

  reload() {}
}
`,
		"consumer.ts": `import { Service } from "./service";

export function run(s: Service) {
  s.refresh();
  const { reload } = s;
  reload();
}
`,
	})

	assert.Equal(t, 2, analysis.FilesAnalyzed)
	assert.Equal(t, []string{"load", "stale"}, names(analysis.Unused))
	for _, u := range analysis.Unused {
		assert.Equal(t, KindMethod, u.Kind)
	}
}

func TestAnalyze_ScriptFilesShareScope(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"shared.ts":     "function formatDate() {}\nfunction orphan() {}\n",
		"main.ts":       "formatDate();\nlocal();\n",
		"mod.ts":        "function local() {}\nexport const x = 1;\n",
	})

	assert.Equal(t, 3, analysis.FilesAnalyzed)
	assert.Equal(t, []string{"local", "orphan"}, names(analysis.Unused))
}

func TestAnalyze_JSXComponentUsage(t *testing.T) {
	t.Parallel()

	_, analysis := runAnalysis(t, map[string]string{
		"tsconfig.json": tsconfig,
		"page.tsx":      `function Header() {
  return <h1>Title</h1>;
}

function Footer() {
  return <footer />;
}

export default function Page() {
  return (
    <main>
      <Header />
    </main>
  );
}
`,
	})

	assert.Equal(t, []string{"Footer"}, names(analysis.Unused))
}

func TestAnalyze_StableAcrossRuns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": tsconfig,
		"a.ts":          "function a() {}\nfunction b() {}\n",
		"c.ts":          "const c = () => 1;\n",
	})

	_, first, err := Run(context.Background(), root, defaultOptions(), nil)
	require.NoError(t, err)
	_, second, err := Run(context.Background(), root, defaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c"}, names(first.Unused))
	assert.Equal(t, 2, first.FilesAnalyzed)
}

func TestNewProgramContext_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": tsconfig,
		"a.ts":          "function a() {}\n",
	})

	prog, err := BuildProgram(root, defaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewProgramContext(ctx, prog, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
