package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/deadscan/internal/symbols"
)

var symbolsFormatFlag string

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Find functions and methods that are never referenced",
	Long: `Symbols parses every file of the TypeScript program described by the
nearest tsconfig.json and lists function declarations, methods and
arrow-function bindings whose only reference is their own declaration.

Exported declarations are always treated as used.

Examples:
  # Analyze the program found from the current directory
  deadscan symbols

  # Machine-readable output
  deadscan symbols --format json
`,
	Args: cobra.NoArgs,
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringVar(&symbolsFormatFlag, "format", "text", "output format: text or json")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	workDir, err := resolveRoot("")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(workDir)
	if err != nil {
		return err
	}

	var progress symbols.ProgressReporter = &symbols.NoOpProgressReporter{}
	if !quiet && symbolsFormatFlag == "text" {
		progress = NewSymbolsProgressReporter()
	}

	return executeSymbols(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), workDir, cfg.ToSymbolOptions(), symbolsFormatFlag, progress)
}

// executeSymbols runs the symbol scan from workDir and writes the report.
func executeSymbols(ctx context.Context, out, errOut io.Writer, workDir string, opts symbols.Options, format string, progress symbols.ProgressReporter) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	if format == "text" {
		header(out, "🔍 Analyzing project for unused functions...")
	}

	prog, analysis, err := symbols.Run(ctx, workDir, opts, progress)
	if err != nil {
		if errors.Is(err, symbols.ErrConfigNotFound) {
			failure(errOut, "❌ Could not find %s", opts.ConfigName)
			fmt.Fprintln(errOut, "   The symbol scanner needs a TypeScript project configuration.")
			fmt.Fprintln(errOut, "   Install TypeScript and create one with:")
			fmt.Fprintln(errOut, "     npm install --save-dev typescript && npx tsc --init")
		}
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	if verbose {
		fmt.Fprintf(out, "   Using %s\n", relTo(workDir, prog.ConfigPath))
	}
	fmt.Fprintf(out, "📁 Analyzed %d files\n", analysis.FilesAnalyzed)
	fmt.Fprintln(out)

	if len(analysis.Unused) == 0 {
		fmt.Fprintln(out, "Found 0 unused functions")
		success(out, "✅ No unused functions found!")
		return nil
	}

	header(out, "🗑️  Found %d unused functions:", len(analysis.Unused))
	for _, u := range analysis.Unused {
		bullet(out, "%s in %s:%d (%s)", u.Name, relTo(workDir, u.File), u.Line, u.Kind)
	}
	return nil
}
