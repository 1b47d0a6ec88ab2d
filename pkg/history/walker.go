package history

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
)

// ErrStopWalk signals an early, successful end of a walk when returned from
// a visit function.
var ErrStopWalk = errors.New("stop walk")

// Source is the walker's view of object storage
type Source interface {
	Get(ctx context.Context, hash objects.ObjectHash) (objects.Object, error)
}

// Entry is one emitted commit with its identity
type Entry struct {
	Hash   objects.ObjectHash
	Commit *commit.Commit
}

// Walker traverses commit ancestry from one or more start points.
//
// Emission order: newest committer timestamp first, with equal timestamps
// broken by identity so the order is deterministic. A commit is never
// emitted before every reachable commit that lists it as a parent, which
// keeps the output topologically sound even when clocks are skewed.
//
// The walk loads the reachable subgraph once up front, counting for each
// commit how many reachable children point at it, then emits lazily from a
// priority queue of commits whose children have all been emitted.
type Walker struct {
	source Source
}

// NewWalker creates a walker over the given source
func NewWalker(source Source) *Walker {
	return &Walker{source: source}
}

// Walk visits ancestry from the start commits, calling visit for each commit
// in emission order. Duplicate and overlapping starts are visited once.
// Returning ErrStopWalk from visit ends the walk without error.
func (w *Walker) Walk(ctx context.Context, starts []objects.ObjectHash, visit func(Entry) error) error {
	graph, childCount, loadErr := w.loadReachable(ctx, starts)
	if loadErr != nil {
		return loadErr
	}

	queue := &commitQueue{}
	heap.Init(queue)
	for hash := range graph {
		if childCount[hash] == 0 {
			heap.Push(queue, Entry{Hash: hash, Commit: graph[hash]})
		}
	}

	for queue.Len() > 0 {
		entry := heap.Pop(queue).(Entry)

		if visitErr := visit(entry); visitErr != nil {
			if errors.Is(visitErr, ErrStopWalk) {
				return nil
			}
			return visitErr
		}

		for _, parent := range entry.Commit.ParentSHAs() {
			if _, reachable := graph[parent]; !reachable {
				continue
			}
			childCount[parent]--
			if childCount[parent] == 0 {
				heap.Push(queue, Entry{Hash: parent, Commit: graph[parent]})
			}
		}
	}

	return nil
}

// Collect walks ancestry and returns up to limit entries in emission order.
// A limit of 0 or less collects everything.
func (w *Walker) Collect(ctx context.Context, starts []objects.ObjectHash, limit int) ([]Entry, error) {
	var entries []Entry
	walkErr := w.Walk(ctx, starts, func(e Entry) error {
		entries = append(entries, e)
		if limit > 0 && len(entries) >= limit {
			return ErrStopWalk
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return entries, nil
}

// loadReachable walks parent edges from the starts with an explicit
// worklist, loading every reachable commit and counting reachable children.
func (w *Walker) loadReachable(ctx context.Context, starts []objects.ObjectHash) (map[objects.ObjectHash]*commit.Commit, map[objects.ObjectHash]int, error) {
	const op = "load_reachable"

	graph := make(map[objects.ObjectHash]*commit.Commit)
	childCount := make(map[objects.ObjectHash]int)

	worklist := make([]objects.ObjectHash, 0, len(starts))
	seen := make(map[objects.ObjectHash]bool)
	for _, start := range starts {
		if !seen[start] {
			seen[start] = true
			worklist = append(worklist, start)
		}
	}

	for len(worklist) > 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}

		hash := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		c, loadErr := w.loadCommit(ctx, op, hash)
		if loadErr != nil {
			return nil, nil, loadErr
		}
		graph[hash] = c

		for _, parent := range c.ParentSHAs() {
			childCount[parent]++
			if !seen[parent] {
				seen[parent] = true
				worklist = append(worklist, parent)
			}
		}
	}

	return graph, childCount, nil
}

// loadCommit retrieves the object at hash and asserts it is a commit
func (w *Walker) loadCommit(ctx context.Context, op string, hash objects.ObjectHash) (*commit.Commit, error) {
	obj, getErr := w.source.Get(ctx, hash)
	if getErr != nil {
		return nil, getErr
	}

	c, ok := obj.(*commit.Commit)
	if !ok {
		return nil, err.New("history", err.CodeWrongKind, op,
			fmt.Sprintf("object %s is a %s, not a commit", hash.Short(), obj.Type()), nil)
	}
	return c, nil
}

// commitQueue is a max-heap of candidate entries: newest committer
// timestamp first, ties broken by larger identity.
type commitQueue []Entry

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	ti := q[i].Commit.Committer().When.Unix()
	tj := q[j].Commit.Committer().When.Unix()
	if ti != tj {
		return ti > tj
	}
	return q[i].Hash > q[j].Hash
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) {
	*q = append(*q, x.(Entry))
}

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
