// Package err provides a standardized error handling system for the entire project.
//
// # Design Principles
//
// 1. Consistency: All packages use the same base error structure
// 2. Context: Errors carry package, operation, and code information
// 3. Wrapping: Full support for Go 1.13+ error wrapping with errors.Is/As
// 4. Categorization: Machine-readable error codes enable programmatic handling
//
// # Usage Patterns
//
// Each package defines a pkgName constant and uses the shared codes:
//
//	const pkgName = "store"
//
//	return nil, err.New(pkgName, err.CodeNotFound, "read",
//	    fmt.Sprintf("object %s does not exist", hash), nil)
//
// Callers branch on codes rather than message text:
//
//	if err.IsCode(e, err.CodeAmbiguousPrefix) {
//	    // ask the user for a longer prefix
//	}
//
// # Error Codes
//
// The codes cover the failure kinds of the plumbing core: NOT_FOUND, CORRUPT,
// AMBIGUOUS_PREFIX, CYCLIC_REFERENCE, WRONG_KIND, NO_PARENT, and
// MALFORMED_REVISION, plus general-purpose codes (INVALID_INPUT,
// ALREADY_EXISTS, LOCK_FAILED, INVALID_FORMAT, INTERNAL). Packages should not
// invent new codes without a caller that branches on them.
package err
