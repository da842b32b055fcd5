// Package typing assigns a coarse semantic category to common nouns using the
// hypernym paths of a lexical hierarchy.
package typing

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ErrNotFound is returned by a Hierarchy for lemmas it does not know.
var ErrNotFound = errors.New("typing: lemma not found")

type Category string

const (
	Person       Category = "PERSON"
	Event        Category = "EVENT"
	Organization Category = "ORGANIZATION"
	Location     Category = "LOCATION"
	Misc         Category = "MISC"
)

// Hierarchy returns the textual rendering of all hypernym paths of the
// nominal sense of a lemma.
type Hierarchy interface {
	HypernymPaths(lemma string) (string, error)
}

// Rule maps a category to the keywords searched in the hypernym paths.
type Rule struct {
	Category Category `toml:"category"`
	Keywords []string `toml:"keywords"`
}

// DefaultRules are tried in order, the first rule with a matching keyword
// wins.
func DefaultRules() []Rule {
	return []Rule{
		{Category: Person, Keywords: []string{"Mensch"}},
		{Category: Event, Keywords: []string{"Ereignis", "Geschehnis", "Vorfall"}},
		{Category: Organization, Keywords: []string{"Organisation", "Gruppe", "Institution"}},
		{Category: Location, Keywords: []string{"Gegend", "Ortschaft", "Siedlung", "Stelle"}},
	}
}

// DefaultPronouns are typed PERSON when the hierarchy has no entry.
func DefaultPronouns() []string {
	return []string{"ich", "du", "er", "sie", "Sie", "es", "wir", "ihr", "Ihr", "Sie|sie"}
}

// MapHierarchy is an in memory Hierarchy.
type MapHierarchy map[string]string

func (m MapHierarchy) HypernymPaths(lemma string) (string, error) {
	p, ok := m[lemma]
	if !ok {
		return "", ErrNotFound
	}
	return p, nil
}

type Option func(*Typer)

func WithRules(rules []Rule) Option {
	return func(t *Typer) {
		if len(rules) > 0 {
			t.rules = rules
		}
	}
}

func WithPronouns(pronouns []string) Option {
	return func(t *Typer) {
		if len(pronouns) > 0 {
			t.pronouns = setOf(pronouns)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Typer) {
		t.logger = l
	}
}

// Typer is safe for concurrent use. Results are memoized per lemma.
type Typer struct {
	hierarchy Hierarchy
	rules     []Rule
	pronouns  map[string]struct{}
	logger    *slog.Logger

	mu   sync.Mutex
	memo map[string]Category
}

func New(h Hierarchy, opts ...Option) *Typer {
	t := &Typer{
		hierarchy: h,
		rules:     DefaultRules(),
		pronouns:  setOf(DefaultPronouns()),
		logger:    slog.Default(),
		memo:      map[string]Category{},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Classify never fails: lookup errors fall back to the pronoun table. A
// failed lookup other than ErrNotFound is not memoized, the next call retries
// the hierarchy.
func (t *Typer) Classify(lemma string) Category {
	t.mu.Lock()
	c, ok := t.memo[lemma]
	t.mu.Unlock()
	if ok {
		return c
	}

	c, final := t.classify(lemma)
	if !final {
		return c
	}

	t.mu.Lock()
	t.memo[lemma] = c
	t.mu.Unlock()
	return c
}

func (t *Typer) classify(lemma string) (Category, bool) {
	if t.hierarchy == nil {
		return t.fallback(lemma), true
	}

	paths, err := t.hierarchy.HypernymPaths(lemma)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.logger.Debug("typing: hierarchy lookup failed", "lemma", lemma, "error", err)
			return t.fallback(lemma), false
		}
		return t.fallback(lemma), true
	}

	for _, r := range t.rules {
		for _, k := range r.Keywords {
			if strings.Contains(paths, k) {
				return r.Category, true
			}
		}
	}

	return Misc, true
}

func (t *Typer) fallback(lemma string) Category {
	if _, ok := t.pronouns[lemma]; ok {
		return Person
	}
	return Misc
}

func setOf(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
