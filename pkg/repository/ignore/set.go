package ignore

import (
	"strings"

	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

// Set holds the patterns of an ignore file in declaration order.
//
// Evaluation is last-match-wins: a later pattern overrides an earlier one,
// so "!keep.log" after "*.log" re-includes exactly that file.
type Set struct {
	patterns []*Pattern
}

// NewSet creates an empty pattern set
func NewSet() *Set {
	return &Set{}
}

// AddText parses ignore-file text and appends its patterns
func (s *Set) AddText(text string) {
	for i, line := range strings.Split(text, "\n") {
		if p := ParseLine(line, i+1); p != nil {
			s.patterns = append(s.patterns, p)
		}
	}
}

// Load reads the ignore file at the worktree root. A missing file yields an
// empty set.
func Load(root mgpath.RepositoryPath) (*Set, error) {
	content, err := fileops.ReadString(root.Join(mgpath.IgnoreFile))
	if err != nil {
		return nil, err
	}

	s := NewSet()
	if content != "" {
		s.AddText(content)
	}

	// Repository metadata is always ignored.
	s.AddText(mgpath.MiniGitDir + "/\n")

	return s, nil
}

// IsIgnored reports whether the path is excluded by the set
func (s *Set) IsIgnored(path string, isDir bool) bool {
	ignored, _ := s.Match(path, isDir)
	return ignored
}

// Match evaluates the set against a path, returning the decision and the
// pattern that made it. A nil pattern means nothing matched.
func (s *Set) Match(path string, isDir bool) (bool, *Pattern) {
	ignored := false
	var decided *Pattern

	for _, p := range s.patterns {
		if !p.Matches(path, isDir) {
			continue
		}
		ignored = !p.Negated
		decided = p
	}

	return ignored, decided
}

// Len returns the number of patterns in the set
func (s *Set) Len() int {
	return len(s.patterns)
}
