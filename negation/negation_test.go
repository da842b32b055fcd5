package negation

import (
	"testing"

	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, tokens []sent.Token) *tree.Tree {
	t.Helper()
	tr, err := tree.New(tokens)
	require.NoError(t, err)
	return tr
}

func TestIsNegatedDirect(t *testing.T) {
	// Merkel besuchte die DDR nicht
	tr := build(t, []sent.Token{
		{Id: 1, Text: "Merkel", Head: 2, Dep: "nsubj", Tag: "NE"},
		{Id: 2, Text: "besuchte", Head: 0, Dep: "ROOT", Tag: "VVFIN"},
		{Id: 3, Text: "die", Head: 4, Dep: "det", Tag: "ART"},
		{Id: 4, Text: "DDR", Head: 2, Dep: "obj", Tag: "NE"},
		{Id: 5, Text: "nicht", Head: 2, Dep: "advmod", Tag: "PTKNEG"},
	})

	neg, err := Default().IsNegated(tr, 2)
	require.NoError(t, err)
	assert.True(t, neg)

	neg, err = Default().IsNegated(tr, 4)
	require.NoError(t, err)
	assert.False(t, neg)
}

func TestIsNegatedNested(t *testing.T) {
	// er kam gar nicht
	tr := build(t, []sent.Token{
		{Id: 1, Text: "er", Head: 2, Dep: "nsubj", Tag: "PPER"},
		{Id: 2, Text: "kam", Head: 0, Dep: "ROOT", Tag: "VVFIN"},
		{Id: 3, Text: "gar", Head: 2, Dep: "advmod", Tag: "ADV"},
		{Id: 4, Text: "nicht", Head: 3, Dep: "advmod", Tag: "PTKNEG"},
	})

	neg, err := Default().IsNegated(tr, 2)
	require.NoError(t, err)
	assert.True(t, neg)
}

func TestIsNegatedUnrelatedAdverb(t *testing.T) {
	// Merkel besuchte die DDR dort
	tr := build(t, []sent.Token{
		{Id: 1, Text: "Merkel", Head: 2, Dep: "nsubj", Tag: "NE"},
		{Id: 2, Text: "besuchte", Head: 0, Dep: "ROOT", Tag: "VVFIN"},
		{Id: 3, Text: "die", Head: 4, Dep: "det", Tag: "ART"},
		{Id: 4, Text: "DDR", Head: 2, Dep: "obj", Tag: "NE"},
		{Id: 5, Text: "dort", Head: 2, Dep: "advmod", Tag: "ADV"},
	})

	neg, err := Default().IsNegated(tr, 2)
	require.NoError(t, err)
	assert.False(t, neg)
}

func TestIsNegatedNestedAdverbs(t *testing.T) {
	// er kam gar sehr spät
	tr := build(t, []sent.Token{
		{Id: 1, Text: "er", Head: 2, Dep: "nsubj", Tag: "PPER"},
		{Id: 2, Text: "kam", Head: 0, Dep: "ROOT", Tag: "VVFIN"},
		{Id: 3, Text: "gar", Head: 2, Dep: "advmod", Tag: "ADV"},
		{Id: 4, Text: "sehr", Head: 3, Dep: "advmod", Tag: "ADV"},
		{Id: 5, Text: "spät", Head: 4, Dep: "advmod", Tag: "ADJD"},
	})

	neg, err := Default().IsNegated(tr, 2)
	require.NoError(t, err)
	assert.False(t, neg)
}

func TestIsNegatedCycle(t *testing.T) {
	tr := build(t, []sent.Token{
		{Id: 1, Text: "a", Head: 0, Dep: "ROOT"},
		{Id: 2, Text: "b", Head: 3, Dep: "advmod"},
		{Id: 3, Text: "c", Head: 2, Dep: "advmod"},
	})

	_, err := Default().IsNegated(tr, 2)
	assert.ErrorIs(t, err, ErrCycle)
	assert.ErrorIs(t, err, tree.ErrCycle)
}

func TestNounIsNegated(t *testing.T) {
	// er hat keine Zeit
	tr := build(t, []sent.Token{
		{Id: 1, Text: "er", Head: 2, Dep: "nsubj", Tag: "PPER"},
		{Id: 2, Text: "hat", Head: 0, Dep: "ROOT", Tag: "VAFIN"},
		{Id: 3, Text: "keine", Head: 4, Dep: "advmod", Tag: "PIAT"},
		{Id: 4, Text: "Zeit", Head: 2, Dep: "obj", Tag: "NN"},
	})

	neg, err := Default().NounIsNegated(tr, 4)
	require.NoError(t, err)
	assert.True(t, neg)

	neg, err = Default().NounIsNegated(tr, 2)
	require.NoError(t, err)
	assert.False(t, neg)
}
