package ports

import "iter"

// SourceWalker enumerates the files of a shader source tree.
//
//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type SourceWalker interface {
	// WalkFiles yields every file below root in lexical order. Names matching
	// one of the ignore patterns are skipped.
	WalkFiles(root string, ignores []string) iter.Seq2[string, error]
}
