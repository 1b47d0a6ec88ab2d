package refs

import (
	"fmt"

	"github.com/minigit-vcs/minigit/pkg/common/err"
)

const pkgName = "refs"

// notFoundError reports a reference that does not exist
func notFoundError(op, name string) error {
	return err.New(pkgName, err.CodeNotFound, op,
		fmt.Sprintf("reference %q not found", name), nil)
}

// invalidNameError reports a malformed reference name
func invalidNameError(op, name, reason string) error {
	return err.New(pkgName, err.CodeInvalidInput, op,
		fmt.Sprintf("invalid reference name %q: %s", name, reason), nil)
}

// invalidFormatError reports unparseable reference file content
func invalidFormatError(op, name string, cause error) error {
	return err.New(pkgName, err.CodeInvalidFormat, op,
		fmt.Sprintf("reference %q has malformed content", name), cause)
}

// cyclicError reports symbolic indirection that exceeded the hop bound
func cyclicError(op, name string) error {
	return err.New(pkgName, err.CodeCyclicReference, op,
		fmt.Sprintf("reference %q exceeds %d symbolic hops", name, MaxRefDepth), nil)
}

// lockError reports failure to take the reference write lock
func lockError(op string, cause error) error {
	return err.New(pkgName, err.CodeLockFailed, op,
		"failed to acquire reference lock", cause)
}
