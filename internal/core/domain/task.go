// Package domain holds the core data types of the shader build.
package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// UnknownTaskName is reported for a task that has neither a name, inputs nor outputs.
const UnknownTaskName = "<UnknownTask>"

// Command is a single external invocation. Args[0] is the executable.
type Command struct {
	Args []string
	// Env holds extra "KEY=VALUE" entries layered on top of the process environment.
	Env []string
}

// Name returns the base name of the executable, as shown in reports.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return filepath.Base(c.Args[0])
}

// String renders the command line for logs and fingerprints.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Task represents one schedulable unit of shader build work.
// A task is consumed by exactly one worker and is never shared.
type Task struct {
	// Name overrides the derived display name when set.
	Name string
	// Inputs are the files the outputs depended on during the last build.
	Inputs []string
	// Outputs are the files produced by Commands.
	Outputs  []string
	Commands []Command
}

// DisplayName returns the human readable name of the task.
func (t *Task) DisplayName() string {
	switch {
	case t.Name != "":
		return t.Name
	case len(t.Inputs) > 0:
		return filepath.Base(t.Inputs[0])
	case len(t.Outputs) > 0:
		return filepath.Base(t.Outputs[0])
	default:
		return UnknownTaskName
	}
}

// PrimaryOutput returns the artifact the task exists to produce.
func (t *Task) PrimaryOutput() string {
	if len(t.Outputs) == 0 {
		return ""
	}
	return t.Outputs[0]
}

// CommandRun records one finished command of a task.
type CommandRun struct {
	Name     string
	Duration time.Duration
	ExitCode int32
}

// Result is the outcome of building a task.
type Result struct {
	// ExitCode is the exit status of the failing command, or 0.
	ExitCode int32
	// Output is the trimmed stdout and stderr of every command, newline separated.
	Output string
	// LastCommand is the executable base name of the last command that ran.
	LastCommand string
	Runs        []CommandRun
}

// Failed reports whether a command of the task exited non-zero.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}
