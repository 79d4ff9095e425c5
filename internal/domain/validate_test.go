package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkParadoxes(t *testing.T) {
	t.Run("acyclic constraints yield a graph", func(t *testing.T) {
		constraints := constraintsWith(3, func(c []Constraint) {
			c[0].Before = []int{2}
			c[1].Before = []int{3}
		})

		g, err := MarkParadoxes(constraints)
		require.NoError(t, err)
		require.NotNil(t, g)
		for i, c := range constraints {
			assert.False(t, c.HasParadox(), "section %d", i+1)
		}
	})

	t.Run("marks every vertex on a cycle", func(t *testing.T) {
		constraints := constraintsWith(3, func(c []Constraint) {
			c[0].Before = []int{2}
			c[1].Before = []int{1}
		})

		g, err := MarkParadoxes(constraints)
		assert.Nil(t, g)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParadox))

		var pe *ParadoxError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, []int{1, 2}, pe.Sections)

		assert.Equal(t, "Paradox detected:\n\t§1 must come before §2\n\t§2 must come before §1\n", constraints[0].Paradox)
		assert.Equal(t, "Paradox detected:\n\t§2 must come before §1\n\t§1 must come before §2\n", constraints[1].Paradox)
		assert.False(t, constraints[2].HasParadox())
	})

	t.Run("fixed first section contradicted by a successor", func(t *testing.T) {
		constraints := constraintsWith(3, func(c []Constraint) {
			c[0].Fixed = true
			c[2].Before = []int{1}
		})

		_, err := MarkParadoxes(constraints)
		var pe *ParadoxError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, []int{1, 3}, pe.Sections)
		assert.False(t, constraints[1].HasParadox())
	})

	t.Run("self reference is a paradox", func(t *testing.T) {
		constraints := constraintsWith(2, func(c []Constraint) {
			c[1].Before = []int{2}
		})

		_, err := MarkParadoxes(constraints)
		require.ErrorIs(t, err, ErrParadox)
		assert.Equal(t, "Paradox detected:\n\t§2 must come before §2\n", constraints[1].Paradox)
	})

	t.Run("clears stale reports", func(t *testing.T) {
		constraints := constraintsWith(2, func(c []Constraint) {
			c[0].Before = []int{2}
			c[1].Before = []int{1}
		})
		_, err := MarkParadoxes(constraints)
		require.Error(t, err)

		constraints[1].Before = nil
		g, err := MarkParadoxes(constraints)
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Empty(t, constraints[0].Paradox)
		assert.Empty(t, constraints[1].Paradox)
	})

	t.Run("reports one block per cycle", func(t *testing.T) {
		constraints := constraintsWith(3, func(c []Constraint) {
			c[0].Before = []int{2, 3}
			c[1].Before = []int{1}
			c[2].Before = []int{1}
		})

		_, err := MarkParadoxes(constraints)
		require.Error(t, err)
		assert.Equal(t, 2, strings.Count(constraints[0].Paradox, "Paradox detected:"))
		assert.Equal(t, 1, strings.Count(constraints[1].Paradox, "Paradox detected:"))
	})
}

func TestMarkParadoxesIdempotent(t *testing.T) {
	tests := []struct {
		name string
		set  func(c []Constraint)
	}{
		{"acyclic", func(c []Constraint) {
			c[0].Before = []int{2}
			c[2].Before = []int{4}
		}},
		{"two cycle", func(c []Constraint) {
			c[0].Before = []int{2}
			c[1].Before = []int{1}
		}},
		{"fixed ends contradicted", func(c []Constraint) {
			c[0].Fixed = true
			c[3].Fixed = true
			c[3].Before = []int{1}
			c[1].Before = []int{3}
			c[2].Before = []int{2}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraints := constraintsWith(4, tt.set)

			_, firstErr := MarkParadoxes(constraints)
			first := make([]string, len(constraints))
			for i, c := range constraints {
				first[i] = c.Paradox
			}

			_, secondErr := MarkParadoxes(constraints)
			if firstErr == nil {
				assert.NoError(t, secondErr)
			} else {
				assert.Equal(t, firstErr.Error(), secondErr.Error())
			}
			for i, c := range constraints {
				assert.Equal(t, first[i], c.Paradox, "section %d", i+1)
			}
		})
	}
}

func TestParadoxErrorMessage(t *testing.T) {
	err := &ParadoxError{Sections: []int{2, 5}}
	assert.Equal(t, "paradox detected in 2 section(s): §2, §5", err.Error())
}
