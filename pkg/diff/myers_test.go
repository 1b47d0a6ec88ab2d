package diff

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay applies a script to check it transforms the old sequence into the
// new one.
func replay(script Script) (a, b []string) {
	for _, op := range script {
		switch op.Kind {
		case Equal:
			a = append(a, op.Lines...)
			b = append(b, op.Lines...)
		case Delete:
			a = append(a, op.Lines...)
		case Insert:
			b = append(b, op.Lines...)
		}
	}
	return a, b
}

func kinds(script Script) []OpKind {
	var ks []OpKind
	for _, op := range script {
		ks = append(ks, op.Kind)
	}
	return ks
}

func TestComputeMiddleReplacement(t *testing.T) {
	a := []string{"alpha", "beta", "gamma"}
	b := []string{"alpha", "delta", "gamma"}

	script := Compute(a, b)

	assert.Equal(t, []OpKind{Equal, Delete, Insert, Equal}, kinds(script))
	assert.Equal(t, []string{"beta"}, script[1].Lines)
	assert.Equal(t, []string{"delta"}, script[2].Lines)

	gotA, gotB := replay(script)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
}

func TestComputeIdenticalSequences(t *testing.T) {
	a := []string{"one", "two", "three"}

	script := Compute(a, a)
	assert.Equal(t, []OpKind{Equal}, kinds(script))
	assert.False(t, script.Changed())
}

func TestComputeEmptySequences(t *testing.T) {
	assert.Nil(t, Compute(nil, nil))

	script := Compute(nil, []string{"new"})
	assert.Equal(t, []OpKind{Insert}, kinds(script))

	script = Compute([]string{"old"}, nil)
	assert.Equal(t, []OpKind{Delete}, kinds(script))
}

func TestComputeAppendAndPrepend(t *testing.T) {
	script := Compute([]string{"mid"}, []string{"pre", "mid", "post"})
	gotA, gotB := replay(script)
	assert.Equal(t, []string{"mid"}, gotA)
	assert.Equal(t, []string{"pre", "mid", "post"}, gotB)
}

func TestComputeDisjointSequences(t *testing.T) {
	a := []string{"x", "y"}
	b := []string{"p", "q", "r"}

	script := Compute(a, b)
	gotA, gotB := replay(script)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)

	for _, op := range script {
		assert.NotEqual(t, Equal, op.Kind)
	}
}

func TestComputeRunPositions(t *testing.T) {
	a := []string{"keep", "drop", "keep2"}
	b := []string{"keep", "keep2", "add"}

	script := Compute(a, b)

	// Positions must track each side independently.
	var aPos, bPos int
	for _, op := range script {
		switch op.Kind {
		case Equal:
			assert.Equal(t, aPos, op.AStart)
			assert.Equal(t, bPos, op.BStart)
			aPos += len(op.Lines)
			bPos += len(op.Lines)
		case Delete:
			assert.Equal(t, aPos, op.AStart)
			aPos += len(op.Lines)
		case Insert:
			assert.Equal(t, bPos, op.BStart)
			bPos += len(op.Lines)
		}
	}
}

// TestComputeAgainstReferenceMatcher cross-checks the engine on a batch of
// inputs: the script must replay exactly, and its matched-line count can
// never be below what the reference matcher finds.
func TestComputeAgainstReferenceMatcher(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c", "d"}, {"a", "c", "d", "e"}},
		{{"f1", "f2", "f3"}, {"f3", "f2", "f1"}},
		{{"x"}, {"x", "x", "x"}},
		{{"p", "q", "p", "q"}, {"q", "p", "q", "p"}},
		{{"same"}, {"same"}},
		{{"l1", "l2", "l3", "l4", "l5"}, {"l1", "l3", "l5"}},
	}

	for _, tc := range cases {
		a, b := tc[0], tc[1]
		script := Compute(a, b)

		gotA, gotB := replay(script)
		require.Equal(t, a, gotA)
		require.Equal(t, b, gotB)

		var equalLines int
		for _, op := range script {
			if op.Kind == Equal {
				equalLines += len(op.Lines)
			}
		}

		var refMatched int
		for _, m := range difflib.NewMatcher(a, b).GetMatchingBlocks() {
			refMatched += m.Size
		}

		assert.GreaterOrEqual(t, equalLines, refMatched, "a=%v b=%v", a, b)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"one"}, SplitLines("one\n"))
	assert.Equal(t, []string{"one"}, SplitLines("one"))
	assert.Equal(t, []string{"one", "", "three"}, SplitLines("one\n\nthree\n"))
}
