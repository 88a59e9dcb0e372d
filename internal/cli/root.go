package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/deadscan/internal/config"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deadscan",
	Short: "Find unused files and functions in JavaScript/TypeScript projects",
	Long: `deadscan looks for dead code in a JavaScript/TypeScript project.

  files    files that no entry point reaches through relative imports
  symbols  functions and methods referenced only by their own declaration
  why      how a file is reached from an entry point

Results are heuristics: review them before deleting anything.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecuteCommand runs one subcommand as the whole program, passing the
// process arguments through. Standalone binaries such as unused-files use it.
func ExecuteCommand(name string) {
	rootCmd.SetArgs(append([]string{name}, os.Args[1:]...))
	Execute()
}

func init() {
	cobra.OnInitialize(initOutput)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .deadscan/config.yml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initOutput applies output flags before any command runs.
func initOutput() {
	if noColor {
		color.NoColor = true
	}
}

// loadConfig loads configuration for rootDir, honoring --config.
func loadConfig(rootDir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(rootDir, cfgFile).Load()
	} else {
		cfg, err = config.LoadConfigFromDir(rootDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// resolveRoot returns the absolute project root: dir if given, else the
// working directory.
func resolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return abs, nil
}
