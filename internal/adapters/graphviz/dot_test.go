package graphviz

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"storyshuffle/internal/domain"
)

func TestToDOT(t *testing.T) {
	constraints := domain.NewConstraints(3)
	constraints[0].Fixed = true
	constraints[2].Before = []int{2}
	g, err := domain.BuildGraph(constraints)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, []string{"The \"opening\" scene", "Middle", ""}, constraints)

	for _, want := range []string{
		"digraph G {",
		`1 [label="§1\nThe \"opening\" scene", penwidth=3];`,
		`2 [label="§2\nMiddle"];`,
		`3 [label="§3"];`,
		"1 -> 2;",
		"1 -> 3;",
		"3 -> 2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected DOT to contain %q, got:\n%s", want, dot)
		}
	}
}

func TestToDOTMarksParadoxes(t *testing.T) {
	constraints := domain.NewConstraints(2)
	constraints[0].Before = []int{2}
	constraints[1].Before = []int{1}
	_, _ = domain.MarkParadoxes(constraints)
	g, err := domain.BuildGraph(constraints)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, nil, constraints)

	red := regexp.MustCompile(`(?m)^  (\d+) \[.*, color=red`)
	var got []string
	for _, m := range red.FindAllStringSubmatch(dot, -1) {
		got = append(got, m[1])
	}
	if strings.Join(got, ",") != "1,2" {
		t.Errorf("expected sections 1 and 2 drawn red, got %v in:\n%s", got, dot)
	}

	constraints[1].Before = nil
	_, _ = domain.MarkParadoxes(constraints)
	g, err = domain.BuildGraph(constraints)
	if err != nil {
		t.Fatal(err)
	}
	if dot := ToDOT(g, nil, constraints); red.MatchString(dot) {
		t.Errorf("expected no red sections once the cycle is broken, got:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, err := domain.BuildGraph(domain.NewConstraints(2))
	if err != nil {
		t.Fatal(err)
	}

	svg, err := RenderSVG(context.Background(), ToDOT(g, []string{"a", "b"}, nil))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("expected SVG output, got %q", svg[:min(len(svg), 80)])
	}
}
