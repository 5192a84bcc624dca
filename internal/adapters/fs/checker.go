package fs

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*Checker)(nil)

// slangLibraries are the shared library names slangc loads from its own directory.
var slangLibraries = []string{"slang.dll", "libslang.so", "libslang.dylib"}

// CheckerOptions configures a Checker for one build.
type CheckerOptions struct {
	// Root is the output directory the build stamps belong to.
	Root  string
	Force bool
	// NewestTool is the most recent modification time of the toolchain.
	NewestTool time.Time
}

// Checker decides whether a task must run by comparing modification times of
// its inputs, outputs and the toolchain, then the recorded command fingerprint.
type Checker struct {
	hasher ports.Hasher
	store  ports.BuildInfoStore
	opts   CheckerOptions
}

// NewChecker creates a new Checker.
func NewChecker(hasher ports.Hasher, store ports.BuildInfoStore, opts CheckerOptions) *Checker {
	return &Checker{hasher: hasher, store: store, opts: opts}
}

// NeedsBuild reports whether task is stale.
//
// Any missing input or output, or a task without inputs or outputs, is stale.
// Otherwise the task is stale when the newest of its inputs and the toolchain is
// newer than its oldest output, or when the stamp of its primary output was
// recorded for different commands. A missing stamp is not a reason to rebuild.
func (c *Checker) NeedsBuild(task *domain.Task) (bool, error) {
	if c.opts.Force || len(task.Inputs) == 0 || len(task.Outputs) == 0 {
		return true, nil
	}

	var newestInput time.Time
	for _, input := range task.Inputs {
		mtime, ok := modTime(input)
		if !ok {
			return true, nil
		}
		if mtime.After(newestInput) {
			newestInput = mtime
		}
	}

	var oldestOutput time.Time
	for i, output := range task.Outputs {
		mtime, ok := modTime(output)
		if !ok {
			return true, nil
		}
		if i == 0 || mtime.Before(oldestOutput) {
			oldestOutput = mtime
		}
	}

	if c.opts.NewestTool.After(newestInput) {
		newestInput = c.opts.NewestTool
	}
	if newestInput.After(oldestOutput) {
		return true, nil
	}

	info, err := c.store.Get(c.opts.Root, task.PrimaryOutput())
	if err != nil {
		return false, err
	}
	return info != nil && info.CommandHash != c.hasher.HashCommands(task), nil
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// NewestToolTime returns the most recent modification time among the compilers,
// the Slang shared library next to slangc when present, and the shaderbuild
// executable. Tools given as bare names are looked up in PATH.
func NewestToolTime(tools domain.Toolchain) (time.Time, error) {
	paths := []string{tools.Glslang, tools.Slangc}
	if tools.Self != "" {
		paths = append(paths, tools.Self)
	}

	var newest time.Time
	for _, path := range paths {
		mtime, err := toolModTime(path)
		if err != nil {
			return time.Time{}, err
		}
		if mtime.After(newest) {
			newest = mtime
		}
	}

	if slangc, err := resolveTool(tools.Slangc); err == nil {
		for _, name := range slangLibraries {
			if mtime, ok := modTime(filepath.Join(filepath.Dir(slangc), name)); ok && mtime.After(newest) {
				newest = mtime
			}
		}
	}

	return newest, nil
}

func toolModTime(path string) (time.Time, error) {
	resolved, err := resolveTool(path)
	if err == nil {
		var info fs.FileInfo
		if info, err = os.Stat(resolved); err == nil {
			return info.ModTime(), nil
		}
	}
	return time.Time{}, zerr.With(zerr.Wrap(err, domain.ErrToolStatFailed.Error()), "tool", path)
}

// resolveTool returns path unchanged when it names a file and looks it up in PATH otherwise.
func resolveTool(path string) (string, error) {
	if filepath.Base(path) != path {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	return exec.LookPath(path)
}
