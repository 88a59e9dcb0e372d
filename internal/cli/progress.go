package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// SymbolsProgressReporter shows a progress bar while program files are parsed.
type SymbolsProgressReporter struct {
	parseBar  *progressbar.ProgressBar
	startTime time.Time
}

// NewSymbolsProgressReporter creates a new CLI progress reporter.
func NewSymbolsProgressReporter() *SymbolsProgressReporter {
	return &SymbolsProgressReporter{
		startTime: time.Now(),
	}
}

func (c *SymbolsProgressReporter) OnParseStart(totalFiles int) {
	if verbose {
		log.Printf("Parsing %d program files\n", totalFiles)
	}
	c.parseBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *SymbolsProgressReporter) OnFileParsed(path string) {
	if c.parseBar != nil {
		c.parseBar.Add(1)
	}
}

func (c *SymbolsProgressReporter) OnParseComplete() {
	if c.parseBar != nil {
		c.parseBar.Finish()
		c.parseBar = nil
	}
	if verbose {
		log.Printf("Parsed program in %.1fs\n", time.Since(c.startTime).Seconds())
	}
}
