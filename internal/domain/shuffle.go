package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrNoRoots means the orderer ran out of in-degree-zero vertices before the
// graph was empty. Validation rules this out, so seeing it indicates a bug
// in graph construction or cycle detection.
var ErrNoRoots = errors.New("no root left in precedence graph")

// Rand picks an index uniformly from [0, n). *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// processRand draws from the process-wide generator.
type processRand struct{}

func (processRand) IntN(n int) int { return rand.IntN(n) }

// ProcessRand returns the process-wide pseudorandom source.
func ProcessRand() Rand { return processRand{} }

// NewSeededRand returns a reproducible source for tests and --seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Order computes a randomized linear extension of the acyclic graph g.
// At each step one of the current roots is chosen uniformly at random and
// emitted as a zero-based section index. This is a greedy randomized
// topological sort; it does not sample uniformly over all linear extensions.
//
// g is left untouched. In-degrees are tracked incrementally, so the whole
// run is O(V+E) plus O(R) per pick for R current roots.
func Order(g *Graph, rng Rand) ([]int, error) {
	if rng == nil {
		rng = ProcessRand()
	}

	inDegree := make(map[int]int, g.Len())
	for _, v := range g.Vertices() {
		inDegree[v] = g.InDegree(v)
	}
	roots := g.Roots()

	order := make([]int, 0, g.Len())
	for len(order) < g.Len() {
		if len(roots) == 0 {
			return nil, fmt.Errorf("%w: %d of %d sections placed", ErrNoRoots, len(order), g.Len())
		}
		i := rng.IntN(len(roots))
		v := roots[i]
		roots[i] = roots[len(roots)-1]
		roots = roots[:len(roots)-1]

		order = append(order, v-1)
		for _, succ := range g.Successors(v) {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				roots = append(roots, succ)
			}
		}
	}
	return order, nil
}

// Shuffle orders g and pairs each index with its section text. sections
// must have one entry per vertex.
func Shuffle(g *Graph, sections []string, rng Rand) (*OrderingResult, error) {
	if g.Len() != len(sections) {
		return nil, fmt.Errorf("%w: graph has %d sections, manuscript has %d", ErrUnknownSection, g.Len(), len(sections))
	}
	indices, err := Order(g, rng)
	if err != nil {
		return nil, err
	}
	return NewOrderingResult(indices, sections), nil
}
