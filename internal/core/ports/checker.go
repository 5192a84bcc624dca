package ports

import "go.trai.ch/shaderbuild/internal/core/domain"

// StalenessChecker decides whether a task's outputs are out of date.
//
//go:generate mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type StalenessChecker interface {
	NeedsBuild(task *domain.Task) (bool, error)
}
