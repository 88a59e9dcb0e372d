package symbols

import (
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	tsLanguage  = sitter.NewLanguage(typescript.LanguageTypescript())
	tsxLanguage = sitter.NewLanguage(typescript.LanguageTSX())
)

// languageFor picks the grammar for a file. JSX syntax is only valid in the
// TSX grammar, and plain JavaScript parses with it as well.
func languageFor(path string) *sitter.Language {
	switch filepath.Ext(path) {
	case ".tsx", ".jsx", ".js":
		return tsxLanguage
	default:
		return tsLanguage
	}
}

// SourceFile is a parsed program file. Its reference counts are computed once
// at parse time.
type SourceFile struct {
	Path   string // absolute path
	Source []byte
	Tree   *sitter.Tree

	identRefs map[string]int // identifier occurrences by name
	isModule  bool           // has a top-level import or export
}

// parseFile reads and parses a single source file with tree-sitter.
func parseFile(path string) (*SourceFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(languageFor(path)); err != nil {
		return nil, fmt.Errorf("failed to set language for %s: %w", path, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", path)
	}

	return &SourceFile{
		Path:      path,
		Source:    source,
		Tree:      tree,
		identRefs: make(map[string]int),
	}, nil
}

// Close releases the syntax tree.
func (f *SourceFile) Close() {
	if f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}
