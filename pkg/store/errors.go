package store

import (
	"fmt"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
)

const pkgName = "store"

// notFoundError reports that no object exists under the given identity
func notFoundError(op string, hash objects.ObjectHash) error {
	return err.New(pkgName, err.CodeNotFound, op,
		fmt.Sprintf("object %s not found", hash), nil)
}

// corruptError reports that stored bytes failed their integrity check
func corruptError(op string, hash objects.ObjectHash, cause error) error {
	return err.New(pkgName, err.CodeCorrupt, op,
		fmt.Sprintf("object %s failed integrity check", hash), cause)
}

// prefixNotFoundError reports that no stored object matches a prefix
func prefixNotFoundError(op, prefix string) error {
	return err.New(pkgName, err.CodeNotFound, op,
		fmt.Sprintf("no object matches prefix %q", prefix), nil)
}

// invalidInputError reports a malformed argument
func invalidInputError(op, message string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, message, cause)
}

// ambiguousPrefixError reports a prefix matching more than one object.
// The matches are included so callers can show the candidates.
func ambiguousPrefixError(op, prefix string, matches []objects.ObjectHash) error {
	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.String()
	}
	return err.New(pkgName, err.CodeAmbiguousPrefix, op,
		fmt.Sprintf("prefix %q is ambiguous: matches %s", prefix, strings.Join(candidates, ", ")), nil)
}

// wrongKindError reports an object of an unexpected kind
func wrongKindError(op string, hash objects.ObjectHash, want, got objects.ObjectType) error {
	return err.New(pkgName, err.CodeWrongKind, op,
		fmt.Sprintf("object %s is a %s, not a %s", hash.Short(), got, want), nil)
}
