package symbols

import (
	"context"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Kind labels the syntax of a reported declaration.
type Kind string

const (
	KindFunction           Kind = "FunctionDeclaration"
	KindMethod             Kind = "MethodDeclaration"
	KindArrowFunction      Kind = "ArrowFunction"
	KindFunctionExpression Kind = "FunctionExpression"
)

// UnusedSymbol is a function-like declaration whose only reference is the
// declaration itself.
type UnusedSymbol struct {
	Name string `json:"name"`
	File string `json:"file"` // absolute path
	Line int    `json:"line"` // 1-based
	Kind Kind   `json:"kind"`
}

// Declaration is a function-like binding found while visiting a file.
type Declaration struct {
	Name string
	Kind Kind
	File *SourceFile
	Node *sitter.Node // the declaring node (function, method or variable declarator)
	Line int
}

// ProgramContext holds everything the analysis needs: the program, its parsed
// files and program-wide reference counts. It is built once per run and not
// modified afterwards.
type ProgramContext struct {
	Program *Program
	Files   []*SourceFile

	propertyRefs map[string]int // property identifier occurrences across the program
	globalRefs   map[string]int // identifier occurrences across the program
}

// NewProgramContext parses every program file and precomputes reference
// counts. Parse failures are returned as errors.
func NewProgramContext(ctx context.Context, prog *Program, progress ProgressReporter) (*ProgramContext, error) {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	pc := &ProgramContext{
		Program:      prog,
		Files:        make([]*SourceFile, 0, len(prog.Files)),
		propertyRefs: make(map[string]int),
		globalRefs:   make(map[string]int),
	}

	progress.OnParseStart(len(prog.Files))
	for _, path := range prog.Files {
		if err := ctx.Err(); err != nil {
			pc.Close()
			return nil, err
		}

		file, err := parseFile(path)
		if err != nil {
			pc.Close()
			return nil, err
		}
		pc.countReferences(file)
		pc.Files = append(pc.Files, file)
		progress.OnFileParsed(path)
	}
	progress.OnParseComplete()

	return pc, nil
}

// Close releases all syntax trees.
func (pc *ProgramContext) Close() {
	for _, f := range pc.Files {
		f.Close()
	}
}

// countReferences records the file's identifier counts and adds them to the
// program-wide totals.
func (pc *ProgramContext) countReferences(file *SourceFile) {
	root := file.Tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		switch root.Child(uint(i)).Kind() {
		case "import_statement", "export_statement":
			file.isModule = true
		}
	}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "identifier", "shorthand_property_identifier":
			name := extractNodeText(n, file.Source)
			file.identRefs[name]++
			pc.globalRefs[name]++
		case "property_identifier", "shorthand_property_identifier_pattern":
			// `obj.load`, `{ load() {} }` and `const { load } = obj` all name
			// a property.
			pc.propertyRefs[extractNodeText(n, file.Source)]++
		}
		return true
	})
}

// IsSymbolUnused reports whether decl is referenced only at its declaration.
// Exported declarations are always considered used.
//
// Function and arrow bindings in a module are counted by identifier within the
// declaring file. A script (no top-level import or export) shares the global
// scope, so its bindings are counted across the whole program. Methods are
// counted by property name across the whole program. All counts are by name,
// so shadowing or an unrelated symbol of the same name can hide an unused
// declaration.
func IsSymbolUnused(pc *ProgramContext, decl Declaration) bool {
	if hasExportModifier(decl) {
		return false
	}

	var refs int
	if decl.Kind == KindMethod {
		refs = pc.propertyRefs[decl.Name]
	} else if decl.File.isModule {
		refs = decl.File.identRefs[decl.Name]
	} else {
		refs = pc.globalRefs[decl.Name]
	}
	return refs <= 1
}

// hasExportModifier reports whether the declaration sits directly inside an
// export statement: `export function f`, `export default function f`,
// `export const f = () => {}`.
func hasExportModifier(decl Declaration) bool {
	node := decl.Node
	if decl.Kind == KindArrowFunction || decl.Kind == KindFunctionExpression {
		// variable_declarator -> lexical_declaration / variable_declaration
		node = node.Parent()
		if node == nil {
			return false
		}
	}
	parent := node.Parent()
	return parent != nil && parent.Kind() == "export_statement"
}

// declarationOf returns the function-like declaration introduced by node, if any.
func declarationOf(file *SourceFile, node *sitter.Node) (Declaration, bool) {
	var kind Kind
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		kind = KindFunction
	case "method_definition":
		if isConstructorOrAccessor(node, file.Source) {
			return Declaration{}, false
		}
		kind = KindMethod
	case "variable_declarator":
		value := node.ChildByFieldName("value")
		if value == nil {
			return Declaration{}, false
		}
		switch value.Kind() {
		case "arrow_function":
			kind = KindArrowFunction
		case "function_expression":
			kind = KindFunctionExpression
		default:
			return Declaration{}, false
		}
	default:
		return Declaration{}, false
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Declaration{}, false
	}
	switch nameNode.Kind() {
	case "identifier", "property_identifier":
	default:
		// Destructuring patterns, computed and private names.
		return Declaration{}, false
	}

	return Declaration{
		Name: extractNodeText(nameNode, file.Source),
		Kind: kind,
		File: file,
		Node: node,
		Line: int(nameNode.StartPosition().Row) + 1,
	}, true
}

// isConstructorOrAccessor reports whether a method_definition is a
// constructor, getter or setter; those are not methods for reporting purposes.
func isConstructorOrAccessor(node *sitter.Node, source []byte) bool {
	if name := node.ChildByFieldName("name"); name != nil && extractNodeText(name, source) == "constructor" {
		return true
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(uint(i)).Kind() {
		case "get", "set":
			return true
		}
	}
	return false
}

// Visit walks node depth-first and appends every unused function-like
// declaration to out.
func Visit(pc *ProgramContext, file *SourceFile, node *sitter.Node, out *[]UnusedSymbol) {
	walkTree(node, func(n *sitter.Node) bool {
		decl, ok := declarationOf(file, n)
		if ok && IsSymbolUnused(pc, decl) {
			*out = append(*out, UnusedSymbol{
				Name: decl.Name,
				File: file.Path,
				Line: decl.Line,
				Kind: decl.Kind,
			})
		}
		return true
	})
}

// Analysis is the result of a symbol scan.
type Analysis struct {
	FilesAnalyzed int            `json:"files_analyzed"`
	Unused        []UnusedSymbol `json:"unused"`
}

// Analyze visits every program file and aggregates the unused declarations,
// in file order then source order.
func Analyze(ctx context.Context, pc *ProgramContext) (*Analysis, error) {
	analysis := &Analysis{Unused: []UnusedSymbol{}}

	for _, file := range pc.Files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis cancelled: %w", err)
		}
		Visit(pc, file, file.Tree.RootNode(), &analysis.Unused)
		analysis.FilesAnalyzed++
	}

	return analysis, nil
}

// Run builds the program found from startDir, parses it and analyzes it.
func Run(ctx context.Context, startDir string, opts Options, progress ProgressReporter) (*Program, *Analysis, error) {
	prog, err := BuildProgram(startDir, opts)
	if err != nil {
		return nil, nil, err
	}

	pc, err := NewProgramContext(ctx, prog, progress)
	if err != nil {
		return nil, nil, err
	}
	defer pc.Close()

	analysis, err := Analyze(ctx, pc)
	if err != nil {
		return nil, nil, err
	}
	return prog, analysis, nil
}
