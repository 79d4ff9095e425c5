// Package graphviz draws the precedence graph of a manuscript.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"storyshuffle/internal/domain"
)

// excerptWidth is the number of runes of section text shown under each label.
const excerptWidth = 32

// ToDOT converts a precedence graph to Graphviz DOT. Node n is labelled §n
// with an excerpt of sections[n-1]. When constraints are given, fixed
// sections are drawn bold and sections on a paradox cycle are drawn red.
func ToDOT(g *domain.Graph, sections []string, constraints []domain.Constraint) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := fmt.Sprintf("§%d", v)
		if v-1 < len(sections) {
			if excerpt := domain.Excerpt(sections[v-1], excerptWidth); excerpt != "" {
				label += "\n" + excerpt
			}
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if v-1 < len(constraints) {
			c := constraints[v-1]
			if c.Fixed {
				attrs = append(attrs, "penwidth=3")
			}
			if c.HasParadox() {
				attrs = append(attrs, "color=red", "fontcolor=red")
			}
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
