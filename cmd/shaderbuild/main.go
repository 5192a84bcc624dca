// Package main is the entry point for the shaderbuild tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/shaderbuild/cmd/shaderbuild/commands"
	"go.trai.ch/shaderbuild/internal/app"
	"go.trai.ch/shaderbuild/internal/core/domain"
	_ "go.trai.ch/shaderbuild/internal/wiring"
)

const (
	exitFailure    = 1
	exitParseError = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrBuildFailed), errors.Is(err, domain.ErrInterrupted):
			// The reporter has already printed the failures.
			return exitFailure
		case errors.Is(err, domain.ErrVariantParse):
			components.Logger.Error(err)
			return exitParseError
		}
		components.Logger.Error(err)
		return exitFailure
	}
	return 0
}
