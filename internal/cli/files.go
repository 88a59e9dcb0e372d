package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/deadscan/internal/reachability"
)

var (
	filesRootFlag   string
	filesFormatFlag string
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Find source files no entry point imports",
	Long: `Files walks the project, follows relative imports (static "from", dynamic
import() and require()) from the entry points and lists every source file that
is never reached.

Entry points are files under route directories (app/, pages/, api/, routes/)
and framework config files (next.config.js, tailwind.config.js, ...). Tests,
stories, specs and .d.ts files are never reported.

Examples:
  # Scan the current directory
  deadscan files

  # Scan another project and print JSON
  deadscan files --root ../dashboard --format json
`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().StringVar(&filesRootFlag, "root", "", "project root (default is the working directory)")
	filesCmd.Flags().StringVar(&filesFormatFlag, "format", "text", "output format: text or json")
}

func runFiles(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(filesRootFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	return executeFiles(cmd.OutOrStdout(), cfg.ToScannerConfig(rootDir), filesFormatFlag)
}

// executeFiles runs the structural scan and writes the report.
func executeFiles(out io.Writer, scanCfg reachability.Config, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	scanner, err := reachability.NewScanner(scanCfg)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	if format == "text" {
		header(out, "🔍 Scanning for unused files in %s...", scanner.Root())
		fmt.Fprintln(out)
	}

	res, summary, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printFilesReport(out, summary, res.Stats)
	return nil
}

func printFilesReport(out io.Writer, summary *reachability.Summary, stats reachability.Stats) {
	header(out, "📊 Summary:")
	fmt.Fprintf(out, "   Total files: %d\n", summary.Total)
	fmt.Fprintf(out, "   Used files: %d\n", summary.Used)
	fmt.Fprintf(out, "   Potentially unused files: %d\n", summary.Unused)

	if verbose {
		fmt.Fprintf(out, "   Entry points: %d\n", stats.Entries)
		fmt.Fprintf(out, "   Files scanned: %d\n", stats.Visited)
		fmt.Fprintf(out, "   Imports: %d resolved, %d external, %d unresolved\n",
			stats.Resolved, stats.External, stats.Unresolved)
		if stats.ReadErrors > 0 {
			fmt.Fprintf(out, "   Unreadable files: %d\n", stats.ReadErrors)
		}
	}
	fmt.Fprintln(out)

	if summary.Unused == 0 {
		success(out, "✅ No unused files found!")
	} else {
		header(out, "🗑️  Potentially unused files:")
		for _, f := range summary.Files {
			bullet(out, "%s", f)
		}
	}

	fmt.Fprintln(out)
	warn(out, "⚠️  Note: this analysis has limitations:")
	for _, line := range reachability.Disclaimer {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
