// Package linear provides a synchronous, line-oriented build reporter.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/shaderbuild/internal/ui/output"
	"go.trai.ch/shaderbuild/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter. Every call holds the print lock for the
// whole block it writes, so output of concurrent workers never interleaves.
type Reporter struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
}

// NewReporter creates a Reporter writing to w with the given color profile.
func NewReporter(w io.Writer, profile termenv.Profile) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		w:      w,
		output: output.NewWithProfile(w, profile),
	}
}

// OnPlan prints how much work the build has.
func (r *Reporter) OnPlan(tasks []string, upToDate int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var line string
	if len(tasks) == 0 {
		line = fmt.Sprintf("All %d shader task(s) are up to date", upToDate)
	} else {
		line = fmt.Sprintf("Building %d shader task(s), %d up to date", len(tasks), upToDate)
	}
	r.println(r.output.String(line).Faint().String())
}

// OnTaskDone prints one timing line per command, then the captured output, or a
// crash notice when the failing command printed nothing.
func (r *Reporter) OnTaskDone(name string, res domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, run := range res.Runs {
		timing := r.output.String(fmt.Sprintf("[%5.2fs]", run.Duration.Seconds())).Faint().String()
		r.println(fmt.Sprintf("%s %s: %s", timing, run.Name, name))
	}

	switch {
	case res.Output != "":
		r.println(fmt.Sprintf("\n%s output for %s:\n%s", res.LastCommand, name, res.Output))
	case res.Failed():
		msg := fmt.Sprintf("\n%s exited with code %d and no output for %s, possibly crashed.",
			res.LastCommand, res.ExitCode, name)
		r.println(r.color(msg, style.Red))
	}
}

// OnSummary prints the outcome of the run.
func (r *Reporter) OnSummary(report *domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	if len(report.Failed) > 0 {
		fmt.Fprintf(&b, "\n%s %d shader task(s) failed:", style.Cross, len(report.Failed))
		for _, f := range report.Failed {
			fmt.Fprintf(&b, "\n  %s (%s exited with code %d)", f.Task, f.Command, f.ExitCode)
		}
		r.println(r.color(b.String(), style.Red))
	}

	switch {
	case report.Interrupted:
		r.println(r.color(fmt.Sprintf("%s Interrupted, %d shader task(s) not started",
			style.Warning, len(report.NotStarted)), style.Yellow))
	case len(report.NotStarted) > 0:
		r.println(r.color(fmt.Sprintf("%s %d shader task(s) not started",
			style.Warning, len(report.NotStarted)), style.Yellow))
	}

	if report.OK() && len(report.Completed) > 0 {
		r.println(r.color(fmt.Sprintf("%s Built %d shader task(s) in %s",
			style.Check, len(report.Completed), report.Duration.Round(time.Millisecond)), style.Green))
	}
}

// OnTimings prints the given task timings, slowest first as passed in.
func (r *Reporter) OnTimings(timings []domain.TaskTiming) {
	if len(timings) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.println(r.output.String("\nSlowest shader tasks:").Bold().String())
	for _, t := range timings {
		r.println(fmt.Sprintf("  [%6.2fs] %s", t.Duration.Seconds(), t.Name))
	}
}

func (r *Reporter) color(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(output.Color(c)).String()
}

// println writes one line. Must be called with r.mu held.
func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
