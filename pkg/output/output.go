// Package output renders runner progress and results as human-readable,
// optionally colored terminal lines.
package output

import (
	"fmt"
	"io"

	"github.com/jwalton/go-supportscolor"

	"github.com/verneri/parity/pkg/check"
)

// ColorEnabled reports whether stdout supports ANSI colors.
func ColorEnabled() bool {
	return supportscolor.Stdout().SupportsColor
}

// Printer writes progress lines, per-check results, and the final summary.
type Printer struct {
	w io.Writer

	green, red, yellow, bold, reset string
}

// New creates a Printer writing to w. Colors are emitted only when color
// is true.
func New(w io.Writer, color bool) *Printer {
	p := &Printer{w: w}
	if color {
		p.green = "\033[32m"
		p.red = "\033[31m"
		p.yellow = "\033[33m"
		p.bold = "\033[1m"
		p.reset = "\033[0m"
	}
	return p
}

// StageHeader announces a pipeline phase.
func (p *Printer) StageHeader(name string) {
	fmt.Fprintf(p.w, "\n%s==> %s%s\n", p.bold, name, p.reset)
}

// Running announces that a check is about to execute, so a human watching
// live output sees progress before the check's own output streams by.
func (p *Printer) Running(name string) {
	fmt.Fprintf(p.w, "%s[RUN]%s %s\n", p.yellow, p.reset, name)
}

// PrintResult outputs a check result with colored status.
func (p *Printer) PrintResult(r check.Result) {
	if r.OK() {
		fmt.Fprintf(p.w, "%s[OK]%s %s\n", p.green, p.reset, r.Name)
		for _, d := range r.Details {
			fmt.Fprintf(p.w, "     %s\n", d)
		}
		return
	}
	fmt.Fprintf(p.w, "%s[FAIL]%s %s\n", p.red, p.reset, r.Name)
	for _, d := range r.Details {
		fmt.Fprintf(p.w, "       %s\n", d)
	}
}

// PrintSummary renders the final verdict: a single success line when every
// check passed, otherwise each failed check listed by name and a hint for
// re-running one check in isolation.
func (p *Printer) PrintSummary(passed, failed []check.Result) {
	fmt.Fprintln(p.w)
	if len(failed) == 0 {
		fmt.Fprintf(p.w, "%sAll %d checks passed%s\n", p.green, len(passed), p.reset)
		return
	}

	fmt.Fprintf(p.w, "%s%d of %d checks failed:%s\n", p.red, len(failed), len(passed)+len(failed), p.reset)
	for _, r := range failed {
		fmt.Fprintf(p.w, "  %s[FAIL]%s %s\n", p.red, p.reset, r.Name)
	}
	fmt.Fprintf(p.w, "\nRe-run a single check with: parity check <name>\n")
}

// Fatal reports an environment failure that stopped the run before the
// remaining stages. This is a different message class than a failed check:
// the environment is broken, not the repository.
func (p *Printer) Fatal(phase, command string, err error) {
	fmt.Fprintln(p.w)
	if command != "" {
		fmt.Fprintf(p.w, "%s[FATAL]%s %s: command %q failed: %v\n", p.red, p.reset, phase, command, err)
	} else {
		fmt.Fprintf(p.w, "%s[FATAL]%s %s: %v\n", p.red, p.reset, phase, err)
	}
	fmt.Fprintf(p.w, "environment is not ready; no further stages were run\n")
}
