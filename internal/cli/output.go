package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/id3-image/internal/batch"
	"github.com/rs/zerolog"
)

// Printer writes results according to the verbosity rules:
//
//	quiet  nothing, not even errors
//	0      errors only
//	1      the affected path
//	2+     a descriptive status line
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	verbosity int
	quiet     bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewPrinter creates a Printer. Styles degrade to plain text when out or
// errOut is not a terminal.
func NewPrinter(out, errOut io.Writer, verbosity int, quiet bool) *Printer {
	if quiet {
		verbosity = -1
	}
	return &Printer{
		out:          out,
		errOut:       errOut,
		verbosity:    verbosity,
		quiet:        quiet,
		successStyle: lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		errorStyle:   lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Done reports a successful operation on path.
func (p *Printer) Done(path, description string) {
	switch {
	case p.verbosity == 1:
		fmt.Fprintln(p.out, path)
	case p.verbosity >= 2:
		fmt.Fprintln(p.out, p.successStyle.Render(description))
	}
}

// Info prints msg at verbosity 1 and above.
func (p *Printer) Info(msg string) {
	if p.verbosity >= 1 {
		fmt.Fprintln(p.out, msg)
	}
}

// Error prints err unless quiet.
func (p *Printer) Error(err error) {
	if p.quiet || err == nil {
		return
	}
	fmt.Fprintln(p.errOut, p.errorStyle.Render(err.Error()))
}

// Results prints every batch result and returns the exit code.
func (p *Printer) Results(results []batch.Result) int {
	code := ExitOK
	for _, res := range results {
		if res.Err != nil {
			p.Error(res.Err)
			code = ExitError
			continue
		}
		p.Done(res.Path, res.Status)
	}
	return code
}

// progressLogger forwards batch progress to the logger. Final results are
// printed by Printer.Results instead.
func progressLogger(logger zerolog.Logger) func(batch.ProgressEvent) {
	return func(event batch.ProgressEvent) {
		if event.Level == batch.LevelVerbose {
			logger.Debug().Str("file", event.Path).Msg(event.Message)
		}
	}
}
