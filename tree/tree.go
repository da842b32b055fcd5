// Package tree holds the dependency tree of one parsed sentence.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"

	sent "github.com/revelaction/binrel/sentence"
)

// RootRel is the relation label carried by the root token.
const RootRel = "ROOT"

var (
	ErrDuplicateNode = errors.New("tree: duplicate token index")
	ErrInvalidIndex  = errors.New("tree: token index must be positive")
	ErrEmpty         = errors.New("tree: sentence has no tokens")

	// ErrCycle is returned by walks that reach a token twice
	ErrCycle = errors.New("tree: cycle")
)

// MissingNodeError is returned when a lookup refers to an index that is not a
// token of the sentence. The root sentinel 0 is never a token.
type MissingNodeError struct {
	Index int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("tree: no token at index %d", e.Index)
}

// Node is one token of the tree.
type Node struct {
	Index int
	Word  string
	Lemma string

	// CTag is the coarse (universal) POS tag, Tag the fine grained one
	CTag string
	Tag  string

	Head int
	Rel  string

	// Deps maps a relation label to the indices of the children attached
	// with that label, in token order.
	Deps map[string][]int
}

// Tree is immutable after New.
type Tree struct {
	nodes map[int]*Node
	order []int
}

// New builds the tree from the parser tokens. Heads are not resolved here: a
// dangling head surfaces as MissingNodeError at lookup time.
func New(tokens []sent.Token) (*Tree, error) {
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}

	t := &Tree{nodes: make(map[int]*Node, len(tokens))}
	for _, tok := range tokens {
		if tok.Id <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, tok.Id)
		}
		if _, ok := t.nodes[tok.Id]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, tok.Id)
		}

		t.nodes[tok.Id] = &Node{
			Index: tok.Id,
			Word:  tok.Text,
			Lemma: tok.Lemma,
			CTag:  tok.Pos,
			Tag:   tok.Tag,
			Head:  tok.Head,
			Rel:   tok.Dep,
			Deps:  map[string][]int{},
		}
		t.order = append(t.order, tok.Id)
	}

	sort.Ints(t.order)

	// children are the inverse of the head relation
	for _, i := range t.order {
		n := t.nodes[i]
		if head, ok := t.nodes[n.Head]; ok {
			head.Deps[n.Rel] = append(head.Deps[n.Rel], i)
		}
	}

	return t, nil
}

// Node returns the token at index i.
func (t *Tree) Node(i int) (*Node, error) {
	n, ok := t.nodes[i]
	if !ok {
		return nil, &MissingNodeError{Index: i}
	}
	return n, nil
}

// Len is the number of tokens.
func (t *Tree) Len() int {
	return len(t.order)
}

// Indices yields the token indices left to right.
func (t *Tree) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, i := range t.order {
			if !yield(i) {
				return
			}
		}
	}
}

// Children returns the indices of the children of i attached with rel. It
// returns nil when i is not a token.
func (t *Tree) Children(i int, rel string) []int {
	n, ok := t.nodes[i]
	if !ok {
		return nil
	}
	return n.Deps[rel]
}

// Has reports whether i has at least one child attached with rel.
func (t *Tree) Has(i int, rel string) bool {
	return len(t.Children(i, rel)) > 0
}

// IsChild reports whether c is a child of i, under any relation.
func (t *Tree) IsChild(i, c int) bool {
	n, ok := t.nodes[c]
	if !ok {
		return false
	}
	_, headOk := t.nodes[i]
	return headOk && n.Head == i
}

// Text reconstructs the sentence by joining the words with spaces.
func (t *Tree) Text() string {
	words := make([]string, 0, len(t.order))
	for i := range t.Indices() {
		if w := t.nodes[i].Word; w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}
