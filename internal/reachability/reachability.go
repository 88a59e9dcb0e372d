package reachability

import (
	"sort"

	"github.com/dominikbraun/graph"
)

// entryRoot is a synthetic vertex with an edge to every entry point, so that
// any reachable file has a path from it.
const entryRoot = "<entry>"

// Result is the outcome of ComputeReachability.
type Result struct {
	Reachable Set
	Entries   []string
	Stats     Stats

	imports graph.Graph[string, string]
}

// ComputeReachability seeds the reachable set with every file matching an
// entry predicate and then follows resolved relative imports breadth-first.
// Each file is scanned at most once, so cyclic imports terminate.
func (s *Scanner) ComputeReachability(allFiles []FileNode, entries []EntryPredicate) *Result {
	res := &Result{
		Reachable: Set{},
		Entries:   []string{},
		imports:   graph.New(graph.StringHash, graph.Directed()),
	}
	_ = res.imports.AddVertex(entryRoot)

	queue := []string{}
	for _, f := range allFiles {
		if !matchesAny(s.Rel(f.Path), entries) {
			continue
		}
		if res.Reachable.Add(f.Path) {
			res.Entries = append(res.Entries, f.Path)
			res.addEdge(entryRoot, f.Path)
			queue = append(queue, f.Path)
		}
	}
	res.Stats.Entries = len(res.Entries)

	visited := Set{}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !visited.Add(current) {
			continue
		}
		res.Stats.Visited++

		raws, ok := readImports(current)
		if !ok {
			res.Stats.ReadErrors++
		}

		for _, raw := range raws {
			edge := ImportEdge{From: current, Raw: raw}
			if !edge.IsRelative() {
				res.Stats.External++
				continue
			}

			target, ok := s.ResolveImport(edge.Raw, edge.From)
			if !ok {
				res.Stats.Unresolved++
				continue
			}
			res.Stats.Resolved++
			res.addEdge(current, target.Path)

			if res.Reachable.Add(target.Path) {
				queue = append(queue, target.Path)
			}
		}
	}

	return res
}

func (r *Result) addEdge(from, to string) {
	_ = r.imports.AddVertex(to)
	// A file importing the same target twice yields ErrEdgeAlreadyExists.
	_ = r.imports.AddEdge(from, to)
}

// Explain returns the shortest import chain from an entry point to path,
// starting with the entry point itself. It returns false if path is not
// reachable.
func (r *Result) Explain(path string) ([]string, bool) {
	if !r.Reachable.Contains(path) {
		return nil, false
	}
	chain, err := graph.ShortestPath(r.imports, entryRoot, path)
	if err != nil || len(chain) < 2 {
		return nil, false
	}
	return chain[1:], true
}

// Importers returns the reachable files that import path directly.
func (r *Result) Importers(path string) []string {
	preds, err := r.imports.PredecessorMap()
	if err != nil {
		return nil
	}
	importers := []string{}
	for from := range preds[path] {
		if from != entryRoot {
			importers = append(importers, from)
		}
	}
	sort.Strings(importers)
	return importers
}
