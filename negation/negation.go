// Package negation decides the polarity of a predicate.
package negation

import (
	"fmt"

	"github.com/revelaction/binrel/tree"
)

var ErrCycle = tree.ErrCycle

// Resolver holds the relation and tags that mark negation. The zero value is
// not useful, use Default.
type Resolver struct {
	// Rel is the relation descended from the predicate
	Rel string

	// ParticleTag is the tag of the negation particle (nicht)
	ParticleTag string

	// DeterminerTag is the tag of the negating determiner (kein)
	DeterminerTag string
}

func Default() Resolver {
	return Resolver{
		Rel:           "advmod",
		ParticleTag:   "PTKNEG",
		DeterminerTag: "PIAT",
	}
}

// IsNegated reports whether a negation particle is reachable from i by
// descending adverbial modifiers.
func (r Resolver) IsNegated(t *tree.Tree, i int) (bool, error) {
	visited := map[int]bool{}
	return r.descend(t, i, visited)
}

func (r Resolver) descend(t *tree.Tree, i int, visited map[int]bool) (bool, error) {
	if visited[i] {
		return false, fmt.Errorf("negation: %w in adverbial modifiers at token %d", ErrCycle, i)
	}
	visited[i] = true

	children := t.Children(i, r.Rel)
	neg := false
	for _, c := range children {
		n, err := t.Node(c)
		if err != nil {
			return false, err
		}
		if n.Tag == r.ParticleTag {
			neg = true
		}
	}

	for _, c := range children {
		sub, err := r.descend(t, c, visited)
		if err != nil {
			return false, err
		}
		neg = neg || sub
	}

	return neg, nil
}

// NounIsNegated reports whether token i has a negating determiner among its
// adverbial modifiers.
func (r Resolver) NounIsNegated(t *tree.Tree, i int) (bool, error) {
	for _, c := range t.Children(i, r.Rel) {
		n, err := t.Node(c)
		if err != nil {
			return false, err
		}
		if n.Tag == r.DeterminerTag {
			return true, nil
		}
	}
	return false, nil
}
