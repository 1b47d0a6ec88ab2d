package revision

import (
	"context"
	"strconv"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
)

// ObjectSource is the resolver's view of object storage
type ObjectSource interface {
	Get(ctx context.Context, hash objects.ObjectHash) (objects.Object, error)
	ResolvePrefix(ctx context.Context, prefix string) (objects.ObjectHash, error)
}

// RefSource is the resolver's view of the reference store
type RefSource interface {
	Exists(name string) (bool, error)
	Resolve(name string) (objects.ObjectHash, error)
}

// Resolver turns revision expressions into object identities.
//
// Expression grammar:
//
//	<revision> := <base> <op>*
//	<base>     := full-hex | "HEAD" | ref-name | hex-prefix (4+ chars)
//	<op>       := "^" | "^" N | "~" | "~" N
//
// Base resolution tries, in order: a full 40-character identity, HEAD, the
// reference candidates <name>, refs/<name>, refs/tags/<name>,
// refs/heads/<name>, and finally an abbreviated identity. The first match
// wins, so a reference shadows an identical-looking hex prefix.
//
// Both operators step to the first parent; a count applies the step that
// many times. They require the object at hand to be a commit.
type Resolver struct {
	objectSrc ObjectSource
	refSrc    RefSource
}

// NewResolver creates a resolver over the given sources
func NewResolver(objectSrc ObjectSource, refSrc RefSource) *Resolver {
	return &Resolver{objectSrc: objectSrc, refSrc: refSrc}
}

// Resolve evaluates a revision expression to a full object identity
func (r *Resolver) Resolve(ctx context.Context, rev string) (objects.ObjectHash, error) {
	const op = "resolve"

	base, steps, parseErr := parse(op, rev)
	if parseErr != nil {
		return "", parseErr
	}

	hash, baseErr := r.resolveBase(ctx, op, rev, base)
	if baseErr != nil {
		return "", baseErr
	}

	for _, count := range steps {
		stepped, stepErr := r.stepParents(ctx, op, hash, count)
		if stepErr != nil {
			return "", stepErr
		}
		hash = stepped
	}

	return hash, nil
}

// ResolveCommit evaluates a revision expression and asserts the result is a
// commit, returning it loaded.
func (r *Resolver) ResolveCommit(ctx context.Context, rev string) (objects.ObjectHash, *commit.Commit, error) {
	hash, err := r.Resolve(ctx, rev)
	if err != nil {
		return "", nil, err
	}

	c, err := r.loadCommit(ctx, "resolve_commit", hash)
	if err != nil {
		return "", nil, err
	}
	return hash, c, nil
}

// parse splits an expression into its base and the parent-step counts of its
// suffix operators.
func parse(op, rev string) (string, []int, error) {
	if rev == "" {
		return "", nil, malformedError(op, rev, "empty expression")
	}

	opStart := len(rev)
	for i, c := range rev {
		if c == '^' || c == '~' {
			opStart = i
			break
		}
	}

	base := rev[:opStart]
	if base == "" {
		return "", nil, malformedError(op, rev, "missing base")
	}

	var steps []int
	rest := rev[opStart:]
	for len(rest) > 0 {
		operator := rest[0]
		if operator != '^' && operator != '~' {
			return "", nil, malformedError(op, rev, "unexpected character in operator suffix")
		}
		rest = rest[1:]

		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}

		count := 1
		if digits > 0 {
			n, convErr := strconv.Atoi(rest[:digits])
			if convErr != nil {
				return "", nil, malformedError(op, rev, "invalid operator count")
			}
			count = n
			rest = rest[digits:]
		}

		steps = append(steps, count)
	}

	return base, steps, nil
}

// resolveBase resolves the base portion of an expression to an identity
func (r *Resolver) resolveBase(ctx context.Context, op, rev, base string) (objects.ObjectHash, error) {
	if len(base) == objects.HashLength && objects.IsHexString(base) {
		hash, hashErr := objects.NewObjectHashFromString(base)
		if hashErr == nil {
			if _, getErr := r.objectSrc.Get(ctx, hash); getErr != nil {
				return "", getErr
			}
			return hash, nil
		}
	}

	for _, candidate := range refCandidates(base) {
		exists, existsErr := r.refSrc.Exists(candidate)
		if existsErr != nil {
			continue
		}
		if exists {
			return r.refSrc.Resolve(candidate)
		}
	}

	if len(base) >= objects.MinPrefixLength && len(base) < objects.HashLength && objects.IsHexString(base) {
		hash, prefixErr := r.objectSrc.ResolvePrefix(ctx, base)
		if prefixErr == nil {
			return hash, nil
		}
		if err.IsCode(prefixErr, err.CodeAmbiguousPrefix) {
			return "", prefixErr
		}
	}

	return "", notFoundError(op, rev)
}

// refCandidates returns the reference names a base could abbreviate, in
// lookup order.
func refCandidates(base string) []string {
	if base == "HEAD" {
		return []string{"HEAD"}
	}
	return []string{
		base,
		"refs/" + base,
		"refs/tags/" + base,
		"refs/heads/" + base,
	}
}

// stepParents walks count first-parent steps from the commit at hash
func (r *Resolver) stepParents(ctx context.Context, op string, hash objects.ObjectHash, count int) (objects.ObjectHash, error) {
	for i := 0; i < count; i++ {
		c, loadErr := r.loadCommit(ctx, op, hash)
		if loadErr != nil {
			return "", loadErr
		}

		parent := c.FirstParent()
		if parent == "" {
			return "", noParentError(op, hash)
		}
		hash = parent
	}

	if count == 0 {
		if _, loadErr := r.loadCommit(ctx, op, hash); loadErr != nil {
			return "", loadErr
		}
	}

	return hash, nil
}

// loadCommit retrieves the object at hash and asserts it is a commit
func (r *Resolver) loadCommit(ctx context.Context, op string, hash objects.ObjectHash) (*commit.Commit, error) {
	obj, getErr := r.objectSrc.Get(ctx, hash)
	if getErr != nil {
		return nil, getErr
	}

	c, ok := obj.(*commit.Commit)
	if !ok {
		return nil, wrongKindError(op, hash, obj.Type())
	}
	return c, nil
}
