// Package detector inspects the environment to pick how build output is styled.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/shaderbuild/internal/ui/output"
	"golang.org/x/term"
)

// OutputMode represents how the reporter styles its output.
type OutputMode int

const (
	// ModePlain writes uncolored text, for redirected output and NO_COLOR.
	ModePlain OutputMode = iota
	// ModeCI writes basic ANSI colors understood by CI log viewers.
	ModeCI
	// ModeTerminal uses the full color profile of the terminal.
	ModeTerminal
)

// String returns the name of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeCI:
		return "ci"
	case ModeTerminal:
		return "terminal"
	default:
		return "plain"
	}
}

// DetectEnvironment returns the output mode for f based on NO_COLOR, the CI
// variable and whether f is a terminal.
func DetectEnvironment(f *os.File) OutputMode {
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeCI
	}

	if f != nil && term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return ModeTerminal
	}
	return ModePlain
}

// Profile returns the termenv color profile for mode.
func Profile(mode OutputMode) termenv.Profile {
	switch mode {
	case ModeCI:
		return output.ColorProfileANSI()
	case ModeTerminal:
		return output.ColorProfile()
	default:
		return termenv.Ascii
	}
}
