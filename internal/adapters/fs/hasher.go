package fs

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints the commands of a task.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashCommands computes the XXHash of every command line and its extra
// environment. Environment entries are sorted so their order does not matter.
func (h *Hasher) HashCommands(task *domain.Task) string {
	hasher := xxhash.New()

	for _, c := range task.Commands {
		for _, arg := range c.Args {
			_, _ = hasher.WriteString(arg)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0}) // Section separator

		for _, entry := range slices.Sorted(slices.Values(c.Env)) {
			_, _ = hasher.WriteString(entry)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
