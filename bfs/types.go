// Package bfs provides tunable options and error definitions
// for breadth‐first search over a core.Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"
)

// NoParent marks a source node in Result.Parent lookups.
const NoParent = -1

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when a source id is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option adjusts a single BFS call. A bad value (negative depth) is kept
// aside and reported as ErrOptionViolation once BFS starts.
type Option func(*Options)

// Options is the resolved configuration of one traversal.
type Options struct {
	Ctx context.Context

	// OnEnqueue sees each node once, as it joins the frontier at depth.
	OnEnqueue func(id, depth int)

	// OnVisit sees each node as it leaves the frontier. A non-nil error
	// ends the walk and is returned wrapped.
	OnVisit func(id, depth int) error

	// MaxDepth caps the walk at this hop count; 0 means unbounded.
	MaxDepth int

	// FilterNeighbor decides whether the edge curr→neighbor may be
	// followed. Blocked neighbors can still be reached over other edges.
	FilterNeighbor func(curr, neighbor int) bool

	err error
}

// DefaultOptions returns a background context, no depth cap, every edge
// followed and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnEnqueue:      func(int, int) {},
		OnVisit:        func(int, int) error { return nil },
		FilterNeighbor: func(_, _ int) bool { return true },
	}
}

// WithContext makes the walk stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

func WithOnEnqueue(fn func(id, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

func WithOnVisit(fn func(id, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		case d == 0:
			// explicit "no limit"
			o.MaxDepth = 0
		default:
			o.MaxDepth = d
		}
	}
}

// WithFilterNeighbor only follows edges for which fn returns true, e.g. to
// route around immunised nodes.
func WithFilterNeighbor(fn func(curr, neighbor int) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: nodes visited, in visit sequence.
//   - Depth: node id → distance (in edges) from the nearest source.
//   - Parent: node id → predecessor in the BFS forest (sources have none).
type Result struct {
	Order  []int
	Depth  map[int]int
	Parent map[int]int
}

// MaxDepth returns the largest depth reached, or -1 for an empty result.
// For a connected graph and p=1 this is the number of steps an outbreak
// needs to cover every node.
func (r *Result) MaxDepth() int {
	deepest := -1
	for _, d := range r.Depth {
		if d > deepest {
			deepest = d
		}
	}

	return deepest
}

// ParentOf returns the predecessor of id, or NoParent for sources and
// unreached nodes.
func (r *Result) ParentOf(id int) int {
	if p, ok := r.Parent[id]; ok {
		return p
	}

	return NoParent
}

// PathTo reconstructs the path from the nearest source to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest int) ([]int, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	// build reversed path
	path := []int{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get source → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
