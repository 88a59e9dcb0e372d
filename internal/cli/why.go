package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/deadscan/internal/reachability"
)

var whyRootFlag string

// whyCmd represents the why command
var whyCmd = &cobra.Command{
	Use:   "why <file>",
	Short: "Show how a file is reached from an entry point",
	Long: `Why runs the structural scan and prints the shortest chain of imports from
an entry point to the given file, or reports that nothing reaches it.

Examples:
  deadscan why src/lib/format.ts
`,
	Args: cobra.ExactArgs(1),
	RunE: runWhy,
}

func init() {
	rootCmd.AddCommand(whyCmd)
	whyCmd.Flags().StringVar(&whyRootFlag, "root", "", "project root (default is the working directory)")
}

func runWhy(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(whyRootFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	return executeWhy(cmd.OutOrStdout(), cfg.ToScannerConfig(rootDir), args[0])
}

// executeWhy explains the reachability of target, given relative to the
// project root or as an absolute path.
func executeWhy(out io.Writer, scanCfg reachability.Config, target string) error {
	scanner, err := reachability.NewScanner(scanCfg)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(scanner.Root(), target)
	}
	target = filepath.Clean(target)

	res, _, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	chain, ok := res.Explain(target)
	if !ok {
		warn(out, "✗ %s is not reachable from any entry point", scanner.Rel(target))
		return nil
	}

	rels := make([]string, 0, len(chain))
	for _, p := range chain {
		rels = append(rels, scanner.Rel(p))
	}

	if len(rels) == 1 {
		success(out, "✓ %s is an entry point", rels[0])
		return nil
	}

	success(out, "✓ %s is reachable:", scanner.Rel(target))
	fmt.Fprintf(out, "   %s\n", strings.Join(rels, " → "))

	if importers := res.Importers(target); len(importers) > 1 {
		fmt.Fprintln(out, "   Also imported by:")
		for _, imp := range importers {
			if imp != chain[len(chain)-2] {
				fmt.Fprintf(out, "     - %s\n", scanner.Rel(imp))
			}
		}
	}
	return nil
}
