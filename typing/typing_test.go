package typing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hierarchy = MapHierarchy{
	"Politiker": "[Synset(Politiker), Synset(Mensch), Synset(Lebewesen)]",
	"Unfall":    "[Synset(Unfall), Synset(Vorfall), Synset(Geschehnis)]",
	"Verein":    "[Synset(Verein), Synset(Gruppe), Synset(Organisation)]",
	"Dorf":      "[Synset(Dorf), Synset(Siedlung), Synset(Ortschaft)]",
	"Stuhl":     "[Synset(Stuhl), Synset(Möbel), Synset(Objekt)]",
	// both PERSON and ORGANIZATION keywords: PERSON has priority
	"Mitglied": "[Synset(Gruppe), Synset(Mensch)]",
}

func TestClassify(t *testing.T) {
	tp := New(hierarchy)

	cases := map[string]Category{
		"Politiker": Person,
		"Unfall":    Event,
		"Verein":    Organization,
		"Dorf":      Location,
		"Stuhl":     Misc,
		"Mitglied":  Person,
		"er":        Person,
		"Sie|sie":   Person,
		"Xyz":       Misc,
	}

	for lemma, want := range cases {
		assert.Equal(t, want, tp.Classify(lemma), lemma)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	tp := New(hierarchy)
	first := tp.Classify("Unfall")
	second := tp.Classify(string(first))
	// a category name is not a lemma of the hierarchy
	assert.Equal(t, Misc, second)
	assert.Equal(t, first, tp.Classify("Unfall"))
}

type failingHierarchy struct{}

func (failingHierarchy) HypernymPaths(string) (string, error) {
	return "", errors.New("database is locked")
}

func TestClassifyLookupFailure(t *testing.T) {
	tp := New(failingHierarchy{})
	assert.Equal(t, Person, tp.Classify("wir"))
	assert.Equal(t, Misc, tp.Classify("Haus"))

	nilTyper := New(nil)
	assert.Equal(t, Person, nilTyper.Classify("ich"))
}

// lockedHierarchy fails its first lookups and answers afterwards
type lockedHierarchy struct {
	failures int
	calls    int
}

func (h *lockedHierarchy) HypernymPaths(lemma string) (string, error) {
	h.calls++
	if h.calls <= h.failures {
		return "", errors.New("database is locked")
	}
	if lemma == "Politiker" {
		return "[Synset(Politiker), Synset(Mensch)]", nil
	}
	return "", ErrNotFound
}

func TestClassifyRetriesAfterLookupFailure(t *testing.T) {
	h := &lockedHierarchy{failures: 1}
	tp := New(h)

	assert.Equal(t, Misc, tp.Classify("Politiker"))
	assert.Equal(t, Person, tp.Classify("Politiker"))
	assert.Equal(t, Person, tp.Classify("Politiker"))
	assert.Equal(t, 2, h.calls)
}

func TestClassifyMemoizesNotFound(t *testing.T) {
	h := &lockedHierarchy{}
	tp := New(h)

	assert.Equal(t, Misc, tp.Classify("Haus"))
	assert.Equal(t, Misc, tp.Classify("Haus"))
	assert.Equal(t, 1, h.calls)
}

func TestClassifyCustomRules(t *testing.T) {
	h := MapHierarchy{"nurse": "person.n.01 organism.n.01"}
	tp := New(h,
		WithRules([]Rule{{Category: Person, Keywords: []string{"person.n.01"}}}),
		WithPronouns([]string{"he", "she"}),
	)
	assert.Equal(t, Person, tp.Classify("nurse"))
	assert.Equal(t, Person, tp.Classify("she"))
	assert.Equal(t, Misc, tp.Classify("er"))
}
