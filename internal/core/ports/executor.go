// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/shaderbuild/internal/core/domain"
)

// Executor defines the interface for building tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the task's commands in order and stops at the first non-zero exit.
	//
	// A non-zero exit is reported through the Result. The error is reserved for
	// commands that could not be started at all.
	Execute(ctx context.Context, task *domain.Task) (domain.Result, error)
}
