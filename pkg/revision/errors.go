package revision

import (
	"fmt"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
)

const pkgName = "revision"

// malformedError reports an expression the grammar rejects
func malformedError(op, rev, reason string) error {
	return err.New(pkgName, err.CodeMalformedRevision, op,
		fmt.Sprintf("malformed revision %q: %s", rev, reason), nil)
}

// notFoundError reports an expression whose base names nothing
func notFoundError(op, rev string) error {
	return err.New(pkgName, err.CodeNotFound, op,
		fmt.Sprintf("revision %q did not match any object", rev), nil)
}

// wrongKindError reports an ancestry operator applied to a non-commit
func wrongKindError(op string, hash objects.ObjectHash, got objects.ObjectType) error {
	return err.New(pkgName, err.CodeWrongKind, op,
		fmt.Sprintf("object %s is a %s, ancestry operators require a commit", hash.Short(), got), nil)
}

// noParentError reports a parent traversal past the root of history
func noParentError(op string, hash objects.ObjectHash) error {
	return err.New(pkgName, err.CodeNoParent, op,
		fmt.Sprintf("commit %s has no parent", hash.Short()), nil)
}
