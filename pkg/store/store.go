package store

import (
	"context"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// ObjectStore is the content-addressed storage for all object kinds.
//
// Identity rules the store guarantees:
//   - Put is write-once: storing the same content twice returns the same
//     identity and leaves the first stored bytes untouched.
//   - Get verifies integrity: the returned object's recomputed identity
//     always equals the requested one, or the read fails as corrupt.
//   - ResolvePrefix expands an abbreviated identity to the unique full one,
//     failing when the prefix is too short, unknown, or ambiguous.
type ObjectStore interface {
	// Put stores an object and returns its identity
	Put(ctx context.Context, obj objects.Object) (objects.ObjectHash, error)

	// Get retrieves an object by its full identity
	Get(ctx context.Context, hash objects.ObjectHash) (objects.Object, error)

	// Has reports whether an object with the given identity exists
	Has(ctx context.Context, hash objects.ObjectHash) (bool, error)

	// ResolvePrefix expands an abbreviated identity to the unique full
	// identity it matches
	ResolvePrefix(ctx context.Context, prefix string) (objects.ObjectHash, error)
}
