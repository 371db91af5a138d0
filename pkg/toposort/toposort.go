// Package toposort provides deterministic topological ordering of named
// nodes over declared dependency edges. Node names are interned to integer
// IDs; the sort itself is a recursive depth-first traversal with
// three-state marking, so a cycle is detected the moment a node is
// re-entered while still in progress.
package toposort

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle indicates the graph contains a circular dependency.
var ErrCycle = errors.New("circular dependency detected")

// mark is the visit state of a node during the depth-first traversal.
type mark uint8

const (
	unvisited mark = iota
	visiting
	done
)

// Graph is a directed dependency graph keyed by node name. It is not safe
// for concurrent use.
type Graph struct {
	ids   map[string]int
	names []string
	// deps[u] lists the nodes u depends on, in declaration order.
	deps [][]int
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{ids: make(map[string]int)}
}

// intern returns the ID for name, assigning a new one on first use.
func (g *Graph) intern(name string) int {
	if id, exists := g.ids[name]; exists {
		return id
	}

	id := len(g.names)
	g.ids[name] = id
	g.names = append(g.names, name)
	g.deps = append(g.deps, nil)

	return id
}

// AddNode inserts a node with no dependencies. It returns false if the
// node already exists.
func (g *Graph) AddNode(name string) bool {
	if _, exists := g.ids[name]; exists {
		return false
	}

	g.intern(name)

	return true
}

// AddDependency declares that node depends on dep: dep must appear before
// node in the computed order. Both nodes are created if missing.
func (g *Graph) AddDependency(node, dep string) {
	nodeID := g.intern(node)
	depID := g.intern(dep)

	for _, existing := range g.deps[nodeID] {
		if existing == depID {
			return
		}
	}

	g.deps[nodeID] = append(g.deps[nodeID], depID)
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.names)
}

// Sort returns the nodes in dependency order: every node's dependencies
// appear strictly before it. Nodes with no ordering constraint between
// them keep insertion order. A circular dependency yields ErrCycle with
// the offending path.
func (g *Graph) Sort() ([]string, error) {
	marks := make([]mark, len(g.names))
	order := make([]int, 0, len(g.names))

	var stack []int

	var visit func(id int) error

	visit = func(id int) error {
		switch marks[id] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCycle, g.cyclePath(stack, id))
		case unvisited:
		}

		marks[id] = visiting
		stack = append(stack, id)

		for _, dep := range g.deps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		marks[id] = done
		order = append(order, id)

		return nil
	}

	for id := range g.names {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	sorted := make([]string, len(order))
	for i, id := range order {
		sorted[i] = g.names[id]
	}

	return sorted, nil
}

// cyclePath renders the in-progress portion of the traversal stack from
// the re-entered node onward, closing the loop for readability.
func (g *Graph) cyclePath(stack []int, reentered int) string {
	start := 0

	for i, id := range stack {
		if id == reentered {
			start = i
			break
		}
	}

	parts := make([]string, 0, len(stack)-start+1)
	for _, id := range stack[start:] {
		parts = append(parts, g.names[id])
	}

	parts = append(parts, g.names[reentered])

	return strings.Join(parts, " -> ")
}
