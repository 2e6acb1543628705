package schema

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"entity-schema/internal/graph"
)

// Registry maps names to schema nodes. It is safe for concurrent use;
// registering a node invalidates the cached plan.
type Registry struct {
	mu      sync.RWMutex
	nodes   map[string]*Node
	version uint64

	plan        *Plan
	planVersion uint64
}

// Plan is the processing order derived from a registry version. It is
// shared read-only between validations.
type Plan struct {
	// Order lists every node with parents before children.
	Order []string
	// Graph is the extends graph the order came from.
	Graph *graph.Graph
	// Version is the registry version the plan was built from.
	Version uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*Node)}
}

// Register adds n, replacing any node with the same name.
func (r *Registry) Register(n *Node) error {
	if n == nil {
		return errors.New("register nil schema")
	}

	if err := n.Check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nodes[n.Name] = n
	r.version++

	return nil
}

// Get returns the named node.
func (r *Registry) Get(name string) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[name]

	return n, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.nodes)
}

// Version increases with every Register call.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// Plan returns the processing order for the current registry contents,
// computing it at most once per version. A cyclic or dangling Extends is a
// configuration error.
func (r *Registry) Plan() (*Plan, error) {
	r.mu.RLock()
	if r.plan != nil && r.planVersion == r.version {
		p := r.plan
		r.mu.RUnlock()

		return p, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plan != nil && r.planVersion == r.version {
		return r.plan, nil
	}

	edges := make(map[string][]string, len(r.nodes))
	for name, n := range r.nodes {
		edges[name] = n.Extends
	}

	g := graph.New(edges)

	order, err := g.Toposort()
	if err != nil {
		return nil, fmt.Errorf("invalid schema hierarchy: %w", err)
	}

	r.plan = &Plan{Order: order, Graph: g, Version: r.version}
	r.planVersion = r.version

	return r.plan, nil
}

// DeclaredPaths returns every path declared by any node, sorted and unique.
func (r *Registry) DeclaredPaths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, n := range r.nodes {
		out = append(out, n.Paths()...)
	}

	slices.Sort(out)

	return slices.Compact(out)
}
