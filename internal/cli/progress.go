package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/sightline-dev/sightline/internal/ir"
)

// CLIProgressReporter renders analysis progress as a terminal progress bar.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter. quiet suppresses all
// output.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Analyzing %d files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
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

func (c *CLIProgressReporter) OnFileProcessed(path string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *ir.AnalysisStats) {
	if c.quiet {
		return
	}
	log.Printf("Analyzed %d files in %s: %d functions, %d classes, %d components\n",
		stats.FilesProcessed, stats.Elapsed.Round(time.Millisecond),
		stats.FunctionCount, stats.ClassCount, stats.ComponentCount)
	if stats.ParseErrors > 0 {
		log.Printf("Warning: %d parse errors recorded\n", stats.ParseErrors)
	}
	if stats.FatalFiles > 0 {
		log.Printf("Warning: %d files could not be parsed at all\n", stats.FatalFiles)
	}
}
