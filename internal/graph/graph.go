// Package graph orders named nodes by their declared parents.
package graph

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrCycleDetected reports nodes that can never become ready.
	ErrCycleDetected = errors.New("cycle detected")
	// ErrUnknownNode reports a parent that is not itself a node.
	ErrUnknownNode = errors.New("unknown node")
)

// Graph is a set of named nodes, each listing the parents it extends.
// It is immutable once built and safe for concurrent readers.
type Graph struct {
	names    []string
	parents  map[string][]string
	children map[string][]string
}

// New builds a graph from {name: parents}. Empty parent names are ignored
// and repeated parents collapse to one edge.
func New(edges map[string][]string) *Graph {
	g := &Graph{
		names:    make([]string, 0, len(edges)),
		parents:  make(map[string][]string, len(edges)),
		children: make(map[string][]string),
	}

	for name, parents := range edges {
		g.names = append(g.names, name)

		var ps []string

		for _, p := range parents {
			if p == "" || slices.Contains(ps, p) {
				continue
			}

			ps = append(ps, p)
			g.children[p] = append(g.children[p], name)
		}

		g.parents[name] = ps
	}

	sort.Strings(g.names)

	// Deterministic traversal.
	for p := range g.children {
		sort.Strings(g.children[p])
	}

	return g
}

// Names returns every node, sorted.
func (g *Graph) Names() []string {
	return slices.Clone(g.names)
}

// Parents returns the distinct parents declared by name.
func (g *Graph) Parents(name string) []string {
	return slices.Clone(g.parents[name])
}

// Children returns the nodes that list name as a parent, sorted.
func (g *Graph) Children(name string) []string {
	return slices.Clone(g.children[name])
}

// Toposort returns every node with parents before children.
//
// The result is deterministic: when several nodes are ready, the smallest
// name goes first. A parent that is not a node fails with ErrUnknownNode, and
// nodes left over once no node is ready fail with ErrCycleDetected. No partial
// order is returned on error.
func (g *Graph) Toposort() ([]string, error) {
	indeg := make(map[string]int, len(g.names))

	for _, name := range g.names {
		for _, p := range g.parents[name] {
			if _, ok := g.parents[p]; !ok {
				return nil, fmt.Errorf("%w: %q extends %q", ErrUnknownNode, name, p)
			}

			indeg[name]++
		}
	}

	var ready []string

	for _, name := range g.names {
		if indeg[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(g.names))

	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]

		order = append(order, name)
		for _, child := range g.children[name] {
			indeg[child]--
			if indeg[child] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchStrings(ready, child)
				ready = slices.Insert(ready, k, child)
			}
		}
	}

	if len(order) != len(g.names) {
		var stuck []string

		for _, name := range g.names {
			if indeg[name] > 0 {
				stuck = append(stuck, name)
			}
		}

		return nil, fmt.Errorf("%w among %s", ErrCycleDetected, strings.Join(stuck, ", "))
	}

	return order, nil
}

// Reverse returns the parent to children adjacency.
func (g *Graph) Reverse() map[string][]string {
	out := make(map[string][]string, len(g.children))
	for p, cs := range g.children {
		out[p] = slices.Clone(cs)
	}

	return out
}

// Descendants returns every node reachable from name through child edges,
// in breadth-first discovery order. name itself is not included.
func (g *Graph) Descendants(name string) []string {
	seen := map[string]bool{name: true}

	var out []string

	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, child := range g.children[cur] {
			if seen[child] {
				continue
			}

			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}

	return out
}
