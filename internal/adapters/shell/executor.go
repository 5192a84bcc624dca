// Package shell provides an executor that runs compiler invocations as child processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
	tracer ports.Tracer
}

// NewExecutor creates a new Executor. Every command runs inside a span
// started from tracer.
func NewExecutor(logger ports.Logger, tracer ports.Tracer) *Executor {
	return &Executor{logger: logger, tracer: tracer}
}

// Execute runs the task's commands in order, without a shell.
//
// Child processes are detached from ctx cancellation: an interrupt stops the
// scheduler from starting new tasks but never kills a running compiler.
func (e *Executor) Execute(ctx context.Context, task *domain.Task) (domain.Result, error) {
	var res domain.Result
	var outputs []string

	for _, c := range task.Commands {
		if len(c.Args) == 0 {
			continue
		}

		e.logger.Debug(c.String())

		spanCtx, span := e.tracer.Start(ctx, c.Name())
		span.SetAttribute(ports.SpanKindKey, ports.SpanKindCommand)

		start := time.Now()
		output, exitCode, err := run(context.WithoutCancel(spanCtx), c)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrCommandStart.Error())
			err = zerr.With(err, "command", c.Name())
			err = zerr.With(err, "task", task.DisplayName())
			span.RecordError(err)
			span.End()
			return res, err
		}
		span.SetAttribute("exit_code", exitCode)
		span.End()

		res.LastCommand = c.Name()
		res.Runs = append(res.Runs, domain.CommandRun{
			Name:     c.Name(),
			Duration: time.Since(start),
			ExitCode: exitCode,
		})
		if output != "" {
			outputs = append(outputs, output)
		}

		if exitCode != 0 {
			res.ExitCode = exitCode
			break
		}
	}

	res.Output = strings.Join(outputs, "\n")
	return res, nil
}

// run executes one command and returns its trimmed stdout followed by stderr.
// A non-nil error means the process could not be started.
func run(ctx context.Context, c domain.Command) (string, int32, error) {
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...) //nolint:gosec // compiler invocations built by the planner
	cmd.Env = mergeEnvironment(os.Environ(), c.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := strings.TrimSpace(stdout.String() + stderr.String())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, normalizeExitCode(exitErr.ExitCode()), nil
		}
		return "", 0, err
	}
	return output, 0, nil
}

// normalizeExitCode maps an exit status to a signed 32-bit value, so that
// Windows status codes such as 0xC0000005 read as negative numbers.
func normalizeExitCode(code int) int32 {
	return int32(uint32(code)) //nolint:gosec // wrap-around is the intent
}

// mergeEnvironment layers task entries over the process environment.
func mergeEnvironment(base, overrides []string) []string {
	env := make(map[string]string, len(base)+len(overrides))
	for _, entries := range [][]string{base, overrides} {
		for _, entry := range entries {
			if k, v, ok := strings.Cut(entry, "="); ok {
				env[k] = v
			}
		}
	}

	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}
