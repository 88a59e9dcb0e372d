package reachability

import (
	"sort"
	"strings"
)

// Disclaimer is printed after every unused-file report.
var Disclaimer = []string{
	"Imports built from variables (e.g. dynamic imports with template strings) are not detected.",
	"Files referenced only from public assets (HTML, CSS url(), manifest) may be reported.",
	"Files used only by external tools (build scripts, CLIs, config loaders) may be reported.",
}

// Report returns every file outside the reachable set, skipping tests,
// stories, specs and type declarations, which are conventionally never
// imported. The result is sorted by path.
func (s *Scanner) Report(allFiles []FileNode, reachable Set) []FileNode {
	unused := []FileNode{}
	for _, f := range allFiles {
		if reachable.Contains(f.Path) {
			continue
		}
		if s.excludedFromReport(s.Rel(f.Path)) {
			continue
		}
		unused = append(unused, f)
	}

	sort.Slice(unused, func(i, j int) bool {
		return unused[i].Path < unused[j].Path
	})
	return unused
}

func (s *Scanner) excludedFromReport(relPath string) bool {
	// Prefix with "/" so a top-level "__tests__/" directory still matches
	// fragments written with a leading slash.
	withSlash := "/" + relPath
	for _, fragment := range s.cfg.ReportExclude {
		if strings.Contains(withSlash, fragment) {
			return true
		}
	}
	return false
}

// Summary is the data behind a structural scan report.
type Summary struct {
	Total   int      `json:"total"`
	Used    int      `json:"used"`
	Unused  int      `json:"unused"`
	Files   []string `json:"unused_files"`
	Entries int      `json:"entries"`
}

// Scan runs a complete structural analysis: collect, compute reachability and
// report.
func (s *Scanner) Scan() (*Result, *Summary, error) {
	allFiles, err := s.CollectFiles()
	if err != nil {
		return nil, nil, err
	}

	res := s.ComputeReachability(allFiles, s.EntryPredicates())
	unused := s.Report(allFiles, res.Reachable)

	used := 0
	for _, f := range allFiles {
		if res.Reachable.Contains(f.Path) {
			used++
		}
	}

	summary := &Summary{
		Total:   len(allFiles),
		Used:    used,
		Unused:  len(unused),
		Files:   make([]string, 0, len(unused)),
		Entries: res.Stats.Entries,
	}
	for _, f := range unused {
		summary.Files = append(summary.Files, s.Rel(f.Path))
	}

	return res, summary, nil
}
