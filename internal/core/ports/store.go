package ports

import "go.trai.ch/shaderbuild/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build stamps.
// Root is the output directory the stamps belong to.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build stamp for a given task name.
	// Returns nil, nil if not found.
	Get(root, taskName string) (*domain.BuildInfo, error)

	// Put stores the build stamp.
	Put(root string, info domain.BuildInfo) error

	// Reset removes every stamp under root.
	Reset(root string) error
}
