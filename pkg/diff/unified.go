package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the number of unchanged lines shown around each change
// in unified output.
const DefaultContext = 3

// Hunk is one contiguous region of a unified diff: a run of changes plus the
// context lines around them.
type Hunk struct {
	AStart int // 1-based first old line covered, 0 when the hunk has none
	ACount int
	BStart int // 1-based first new line covered, 0 when the hunk has none
	BCount int
	Ops    []Op
}

// Header renders the hunk range line
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.AStart, h.ACount, h.BStart, h.BCount)
}

// Hunks groups a script into hunks with the given amount of context. Equal
// runs longer than twice the context split the script into separate hunks;
// shorter ones are kept whole. A script with no changes yields no hunks.
func Hunks(script Script, context int) []Hunk {
	if !script.Changed() {
		return nil
	}
	if context < 0 {
		context = 0
	}

	var hunks []Hunk
	var pending []Op

	flush := func() {
		if len(pending) > 0 {
			hunks = append(hunks, buildHunk(pending))
			pending = nil
		}
	}

	for i, op := range script {
		if op.Kind != Equal {
			pending = append(pending, op)
			continue
		}

		first := i == 0
		last := i == len(script)-1

		switch {
		case first:
			pending = append(pending, trailContext(op, context))
		case last:
			pending = append(pending, leadContext(op, context))
		case len(op.Lines) > 2*context:
			pending = append(pending, leadContext(op, context))
			flush()
			pending = append(pending, trailContext(op, context))
		default:
			pending = append(pending, op)
		}
	}
	flush()

	return hunks
}

// Format renders a full unified diff between two texts, including the
// ---/+++ file header. Returns "" when the texts are equal.
func Format(aName, bName, aText, bText string, context int) string {
	script := Compute(SplitLines(aText), SplitLines(bText))
	hunks := Hunks(script, context)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", aName)
	fmt.Fprintf(&sb, "+++ %s\n", bName)

	for _, hunk := range hunks {
		sb.WriteString(hunk.Header())
		sb.WriteByte('\n')
		for _, op := range hunk.Ops {
			marker := op.Kind.String()
			for _, line := range op.Lines {
				sb.WriteString(marker)
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

// buildHunk computes the range header from the ops it covers
func buildHunk(ops []Op) Hunk {
	h := Hunk{Ops: ops}

	for _, op := range ops {
		switch op.Kind {
		case Equal:
			h.ACount += len(op.Lines)
			h.BCount += len(op.Lines)
		case Delete:
			h.ACount += len(op.Lines)
		case Insert:
			h.BCount += len(op.Lines)
		}
	}

	first := ops[0]
	if h.ACount > 0 {
		h.AStart = first.AStart + 1
	}
	if h.BCount > 0 {
		h.BStart = first.BStart + 1
	}

	return h
}

// leadContext keeps only the first n lines of an equal run
func leadContext(op Op, n int) Op {
	if len(op.Lines) <= n {
		return op
	}
	return Op{Kind: Equal, Lines: op.Lines[:n], AStart: op.AStart, BStart: op.BStart}
}

// trailContext keeps only the last n lines of an equal run
func trailContext(op Op, n int) Op {
	if len(op.Lines) <= n {
		return op
	}
	skip := len(op.Lines) - n
	return Op{
		Kind:   Equal,
		Lines:  op.Lines[skip:],
		AStart: op.AStart + skip,
		BStart: op.BStart + skip,
	}
}
