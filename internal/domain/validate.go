package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParadox is matched by a ParadoxError.
var ErrParadox = errors.New("paradox in constraints")

// ParadoxError lists the sections (one-based) that sit on at least one cycle.
type ParadoxError struct {
	Sections []int
}

func (e *ParadoxError) Error() string {
	return fmt.Sprintf("paradox detected in %d section(s): %s", len(e.Sections), FormatSections(e.Sections))
}

func (e *ParadoxError) Is(target error) bool {
	return target == ErrParadox
}

// FormatSections renders one-based section numbers as "§1, §3".
func FormatSections(sections []int) string {
	parts := make([]string, len(sections))
	for i, n := range sections {
		parts[i] = fmt.Sprintf("§%d", n)
	}
	return strings.Join(parts, ", ")
}

// MarkParadoxes builds the precedence graph for constraints and checks every
// vertex for cycles. Each constraint's Paradox is set to the rendered report
// or cleared, so the pass leaves no stale messages behind. It always visits
// every vertex.
//
// The graph is returned only when no vertex lies on a cycle; otherwise the
// error is a *ParadoxError. The caller must ensure every constraint is
// SyntaxValid beforehand.
func MarkParadoxes(constraints []Constraint) (*Graph, error) {
	g, err := BuildGraph(constraints)
	if err != nil {
		return nil, err
	}

	var invalid []int
	for _, v := range g.Vertices() {
		cycles := FindCycles(g, v)
		if len(cycles) == 0 {
			constraints[v-1].Paradox = ""
			continue
		}
		constraints[v-1].Paradox = RenderParadox(cycles)
		invalid = append(invalid, v)
	}

	if len(invalid) > 0 {
		return nil, &ParadoxError{Sections: invalid}
	}
	return g, nil
}
