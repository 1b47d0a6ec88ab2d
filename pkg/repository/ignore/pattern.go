package ignore

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

// Pattern is one parsed line of an ignore file.
//
// Pattern rules:
// - Blank lines and lines starting with # are skipped
// - ! prefix negates the pattern (re-includes matched paths)
// - / suffix restricts the pattern to directories
// - / prefix anchors the pattern at the repository root
// - * matches anything except /, ? matches one character except /
// - ** matches across directory boundaries
//
// Examples:
//   - *.log      → any .log file
//   - build/     → the build directory and its contents
//   - /notes.txt → notes.txt at the root only
//   - !keep.log  → re-include keep.log
type Pattern struct {
	Raw      string
	Glob     string
	Negated  bool
	DirOnly  bool
	Anchored bool
	Line     int
}

// ParseLine parses one ignore-file line. Returns nil for blank lines and
// comments.
func ParseLine(line string, lineNo int) *Pattern {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	p := &Pattern{Raw: trimmed, Line: lineNo}
	body := trimmed

	if rest, ok := strings.CutPrefix(body, "!"); ok {
		p.Negated = true
		body = rest
	}
	if rest, ok := strings.CutSuffix(body, "/"); ok {
		p.DirOnly = true
		body = rest
	}
	if rest, ok := strings.CutPrefix(body, "/"); ok {
		p.Anchored = true
		body = rest
	}

	// A pattern containing a slash is implicitly anchored, matching
	// gitignore semantics.
	if strings.Contains(body, "/") {
		p.Anchored = true
	}

	p.Glob = body
	return p
}

// Matches reports whether the pattern applies to the given path, which must
// be relative to the repository root.
func (p *Pattern) Matches(path string, isDir bool) bool {
	normalized := string(mgpath.RelativePath(path).Normalize())
	if !mgpath.IsPathSafe(normalized) {
		return false
	}

	if p.DirOnly && !isDir && !p.matchesParentDir(normalized) {
		return false
	}

	if p.Anchored {
		return matchGlob(p.Glob, normalized) || matchesUnder(p.Glob, normalized)
	}

	// Unanchored patterns try the basename and every suffix of the path.
	segments := strings.Split(normalized, "/")
	for i := range segments {
		sub := strings.Join(segments[i:], "/")
		if matchGlob(p.Glob, sub) || matchesUnder(p.Glob, sub) {
			return true
		}
	}
	return false
}

// matchesParentDir reports whether some ancestor directory of path matches
// the pattern, which makes files under a matched directory ignored too.
func (p *Pattern) matchesParentDir(path string) bool {
	segments := strings.Split(path, "/")
	for end := 1; end < len(segments); end++ {
		dir := strings.Join(segments[:end], "/")
		if p.Anchored {
			if matchGlob(p.Glob, dir) {
				return true
			}
			continue
		}
		for i := 0; i < end; i++ {
			if matchGlob(p.Glob, strings.Join(segments[i:end], "/")) {
				return true
			}
		}
	}
	return false
}

// matchesUnder reports whether path lies inside a directory matched by the
// glob.
func matchesUnder(glob, path string) bool {
	for {
		idx := strings.LastIndexByte(path, '/')
		if idx < 0 {
			return false
		}
		path = path[:idx]
		if matchGlob(glob, path) {
			return true
		}
	}
}

// matchGlob matches a single glob against a path, with ** spanning
// directory separators.
func matchGlob(glob, path string) bool {
	if !strings.Contains(glob, "**") {
		matched, err := filepath.Match(glob, path)
		return err == nil && matched
	}

	matched, err := regexp.MatchString(globToRegex(glob), path)
	return err == nil && matched
}

// globToRegex converts a glob with ** support into an anchored regex
func globToRegex(glob string) string {
	quoted := regexp.QuoteMeta(glob)
	quoted = strings.ReplaceAll(quoted, `\*\*/`, `(?:.*/)?`)
	quoted = strings.ReplaceAll(quoted, `\*\*`, `.*`)
	quoted = strings.ReplaceAll(quoted, `\*`, `[^/]*`)
	quoted = strings.ReplaceAll(quoted, `\?`, `[^/]`)
	return "^" + quoted + "$"
}
