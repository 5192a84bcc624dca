package ports

import "go.trai.ch/shaderbuild/internal/core/domain"

// Hasher defines the interface for fingerprinting tasks.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashCommands fingerprints the command lines and environment of a task.
	HashCommands(task *domain.Task) string
}
