package diff

import "strings"

// OpKind classifies one run of lines in an edit script
type OpKind int

const (
	// Equal lines appear in both sequences
	Equal OpKind = iota

	// Delete lines appear only in the old sequence
	Delete

	// Insert lines appear only in the new sequence
	Insert
)

// String returns the conventional single-character marker for the kind
func (k OpKind) String() string {
	switch k {
	case Equal:
		return " "
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return "?"
	}
}

// Op is one maximal run of same-kind lines in an edit script.
//
// AStart and BStart are the zero-based positions where the run begins in the
// old and new sequences. Equal and Delete runs advance AStart by len(Lines);
// Equal and Insert runs advance BStart the same way.
type Op struct {
	Kind   OpKind
	Lines  []string
	AStart int
	BStart int
}

// Script is an ordered edit script from the old sequence to the new one.
// Replaying it (keep Equal, drop Delete, add Insert) reproduces the new
// sequence exactly.
type Script []Op

// Changed reports whether the script contains any non-Equal op
func (s Script) Changed() bool {
	for _, op := range s {
		if op.Kind != Equal {
			return true
		}
	}
	return false
}

// Compute derives a shortest edit script between two line sequences using
// the greedy O(ND) strategy: walk diagonals of the edit graph, always
// extending matching runs as far as possible, preferring deletion over
// insertion when both reach the same point so runs of removed lines stay
// contiguous.
func Compute(a, b []string) Script {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil
	}

	max := n + m
	// v[k+max] holds the furthest x on diagonal k after each round.
	v := make([]int, 2*max+1)
	// trace keeps a snapshot of v per round for backtracking.
	trace := make([][]int, 0, max+1)

	var dFound = -1
search:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
				x = v[k+1+max]
			} else {
				x = v[k-1+max] + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[k+max] = x

			if x >= n && y >= m {
				dFound = d
				break search
			}
		}
	}

	ops := backtrack(a, b, trace, dFound)
	return merge(ops)
}

// backtrack walks the trace from the end point back to the origin,
// reconstructing the script in reverse: for each round, first the matching
// run that followed its edit, then the edit itself.
func backtrack(a, b []string, trace [][]int, dFound int) []Op {
	n, m := len(a), len(b)
	max := n + m

	var reversed []Op
	x, y := n, m

	for d := dFound; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[prevK+max]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			reversed = append(reversed, Op{Kind: Equal, Lines: []string{a[x-1]}, AStart: x - 1, BStart: y - 1})
			x--
			y--
		}

		if d > 0 {
			if x == prevX {
				reversed = append(reversed, Op{Kind: Insert, Lines: []string{b[prevY]}, AStart: prevX, BStart: prevY})
			} else {
				reversed = append(reversed, Op{Kind: Delete, Lines: []string{a[prevX]}, AStart: prevX, BStart: prevY})
			}
		}

		x, y = prevX, prevY
	}

	ops := make([]Op, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		ops = append(ops, reversed[i])
	}
	return ops
}

// merge coalesces adjacent single-line ops of the same kind into maximal runs
func merge(ops []Op) Script {
	if len(ops) == 0 {
		return nil
	}

	var script Script
	current := ops[0]

	for _, op := range ops[1:] {
		if op.Kind == current.Kind {
			current.Lines = append(current.Lines, op.Lines...)
			continue
		}
		script = append(script, current)
		current = op
	}
	script = append(script, current)

	return script
}

// SplitLines splits text into lines for diffing, without trailing newlines.
// A trailing newline does not produce a final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
