package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownSection is returned when an edge references a section number
// that is not a vertex of the graph.
var ErrUnknownSection = errors.New("unknown section")

// Edge is a precedence edge: section From must come before section To.
// Both ends are one-based section numbers.
type Edge struct {
	From int
	To   int
}

// Graph is the precedence graph over one-based section numbers.
// An edge u→v means section u must precede section v. Self loops are kept,
// since they encode a section that claims to come before itself.
//
// Graph is not safe for concurrent use.
type Graph struct {
	// adjacency maps vertex → set of successors (forward edges).
	adjacency map[int]map[int]bool
	// reverse maps vertex → set of predecessors (backward edges).
	reverse map[int]map[int]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		adjacency: make(map[int]map[int]bool),
		reverse:   make(map[int]map[int]bool),
	}
}

// AddVertex adds v if it is not already present.
func (g *Graph) AddVertex(v int) {
	if _, ok := g.adjacency[v]; ok {
		return
	}
	g.adjacency[v] = make(map[int]bool)
	g.reverse[v] = make(map[int]bool)
}

// AddEdge adds u→v. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v int) error {
	if _, ok := g.adjacency[u]; !ok {
		return fmt.Errorf("%w: §%d", ErrUnknownSection, u)
	}
	if _, ok := g.adjacency[v]; !ok {
		return fmt.Errorf("%w: §%d", ErrUnknownSection, v)
	}
	g.adjacency[u][v] = true
	g.reverse[v][u] = true
	return nil
}

// HasEdge reports whether u→v is present.
func (g *Graph) HasEdge(u, v int) bool {
	return g.adjacency[u][v]
}

// Has reports whether v is a vertex of the graph.
func (g *Graph) Has(v int) bool {
	_, ok := g.adjacency[v]
	return ok
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.adjacency)
}

// Vertices returns all vertices in ascending order.
func (g *Graph) Vertices() []int {
	vertices := make([]int, 0, len(g.adjacency))
	for v := range g.adjacency {
		vertices = append(vertices, v)
	}
	slices.Sort(vertices)
	return vertices
}

// Successors returns the successors of v in ascending order.
func (g *Graph) Successors(v int) []int {
	return sortedKeys(g.adjacency[v])
}

// Predecessors returns the predecessors of v in ascending order.
func (g *Graph) Predecessors(v int) []int {
	return sortedKeys(g.reverse[v])
}

// InDegree returns the number of edges into v.
func (g *Graph) InDegree(v int) int {
	return len(g.reverse[v])
}

// Edges returns every edge, ordered by From then To.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, u := range g.Vertices() {
		for _, v := range g.Successors(u) {
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	return edges
}

// Roots returns the vertices with no incoming edges, in ascending order.
func (g *Graph) Roots() []int {
	var roots []int
	for _, v := range g.Vertices() {
		if len(g.reverse[v]) == 0 {
			roots = append(roots, v)
		}
	}
	return roots
}

// Remove deletes v together with all of its edges. Removing a missing
// vertex is a no-op.
func (g *Graph) Remove(v int) {
	if _, ok := g.adjacency[v]; !ok {
		return
	}
	for succ := range g.adjacency[v] {
		delete(g.reverse[succ], v)
	}
	for pred := range g.reverse[v] {
		delete(g.adjacency[pred], v)
	}
	delete(g.adjacency, v)
	delete(g.reverse, v)
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for v := range g.adjacency {
		c.AddVertex(v)
	}
	for u, succs := range g.adjacency {
		for v := range succs {
			c.adjacency[u][v] = true
			c.reverse[v][u] = true
		}
	}
	return c
}

// BuildGraph converts constraints into a precedence graph on vertices
// 1..len(constraints):
//   - a fixed first section precedes every other section;
//   - a fixed last section follows every other section;
//   - each Before entry r of constraint i adds (i+1)→r.
//
// Every vertex is created even when it has no edges. References outside
// 1..len(constraints) yield ErrUnknownSection.
func BuildGraph(constraints []Constraint) (*Graph, error) {
	g := NewGraph()
	count := len(constraints)
	if count == 0 {
		return g, nil
	}
	for v := 1; v <= count; v++ {
		g.AddVertex(v)
	}

	if constraints[0].Fixed {
		for v := 2; v <= count; v++ {
			_ = g.AddEdge(1, v)
		}
	}
	if constraints[count-1].Fixed {
		for v := 1; v < count; v++ {
			_ = g.AddEdge(v, count)
		}
	}
	for i, c := range constraints {
		for _, successor := range c.Before {
			if err := g.AddEdge(i+1, successor); err != nil {
				return nil, fmt.Errorf("constraint on §%d: %w", i+1, err)
			}
		}
	}
	return g, nil
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
