package domain

import (
	"fmt"
	"strings"
)

// FindCycles returns every simple directed cycle through v. Each cycle is
// the vertex sequence starting and ending at v, e.g. [v a b v]; a self loop
// is [v v]. Successors are explored in ascending order, so the result is
// deterministic. A vertex not in the graph has no cycles.
//
// The number of simple cycles can grow exponentially with the vertex count;
// recursion depth never exceeds the vertex count.
func FindCycles(g *Graph, v int) [][]int {
	if !g.Has(v) {
		return nil
	}

	var cycles [][]int
	path := []int{v}
	onPath := map[int]bool{v: true}

	var visit func(u int)
	visit = func(u int) {
		for _, w := range g.Successors(u) {
			if w == v {
				cycle := make([]int, len(path)+1)
				copy(cycle, path)
				cycle[len(path)] = v
				cycles = append(cycles, cycle)
				continue
			}
			if onPath[w] {
				continue
			}
			onPath[w] = true
			path = append(path, w)
			visit(w)
			path = path[:len(path)-1]
			delete(onPath, w)
		}
	}
	visit(v)

	return cycles
}

// RenderParadox describes cycles for the writer, one "Paradox detected"
// block per cycle, walking consecutive one-based sections:
//
//	Paradox detected:
//		§1 must come before §2
//		§2 must come before §1
func RenderParadox(cycles [][]int) string {
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteString("Paradox detected:\n")
		for i := 1; i < len(cycle); i++ {
			fmt.Fprintf(&b, "\t§%d must come before §%d\n", cycle[i-1], cycle[i])
		}
	}
	return b.String()
}
