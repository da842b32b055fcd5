// Package extract drives the relation extraction of sentences and documents.
package extract

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sort"

	"github.com/revelaction/binrel/entity"
	"github.com/revelaction/binrel/negation"
	"github.com/revelaction/binrel/predicate"
	"github.com/revelaction/binrel/relation"
	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/tree"
	"github.com/revelaction/binrel/typing"
)

var ErrMalformedSentence = errors.New("extract: malformed sentence")

// Result holds the relations of one sentence.
type Result struct {
	Sentence  sent.Sentence
	Text      string
	Relations []relation.Relation

	// Pairs is the number of candidate pairs, Skipped the pairs abandoned on
	// a lookup failure.
	Pairs   int
	Skipped int
}

type Option func(*Extractor)

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

type Extractor struct {
	resolver  *predicate.Resolver
	negation  negation.Resolver
	typer     *typing.Typer
	assembler *relation.Assembler
	logger    *slog.Logger
}

// New returns an Extractor. A nil typer keeps the linker types of common
// nouns.
func New(res *predicate.Resolver, neg negation.Resolver, typer *typing.Typer, asm *relation.Assembler, opts ...Option) *Extractor {
	e := &Extractor{
		resolver:  res,
		negation:  neg,
		typer:     typer,
		assembler: asm,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Extractor) Types() *relation.TypeSet {
	return e.assembler.Types()
}

// Pairs yields the ordered candidate pairs: every two distinct mentions
// except two common nouns.
func Pairs(ms []entity.Mention) iter.Seq2[entity.Mention, entity.Mention] {
	return func(yield func(entity.Mention, entity.Mention) bool) {
		for i, a := range ms {
			for j, b := range ms {
				if i == j {
					continue
				}
				if a.Class == entity.Common && b.Class == entity.Common {
					continue
				}
				if !yield(a, b) {
					return
				}
			}
		}
	}
}

// Sentence extracts the relations of s. A lookup failure only drops the
// pair; the error is returned when the tree or the mentions are invalid.
func (e *Extractor) Sentence(s sent.Sentence) (Result, error) {
	t, err := tree.New(s.Tokens)
	if err != nil {
		return Result{}, fmt.Errorf("%w: sentence %d: %w", ErrMalformedSentence, s.Id, err)
	}
	reg, err := entity.NewRegistry(s.Entities)
	if err != nil {
		return Result{}, fmt.Errorf("%w: sentence %d: %w", ErrMalformedSentence, s.Id, err)
	}

	res := Result{Sentence: s, Text: t.Text()}
	for subj, obj := range Pairs(reg.Mentions()) {
		res.Pairs++
		rel, ok, err := e.pair(t, subj, obj)
		if err != nil {
			res.Skipped++
			e.logger.Debug("extract: pair skipped",
				"doc", s.DocId, "sentence", s.Id,
				"subject", subj.Key, "object", obj.Key, "error", err)
			continue
		}
		if ok {
			res.Relations = append(res.Relations, rel)
		}
	}

	return res, nil
}

func (e *Extractor) pair(t *tree.Tree, subj, obj entity.Mention) (relation.Relation, bool, error) {
	subj = e.typed(t, subj)
	obj = e.typed(t, obj)

	res, err := e.resolver.Resolve(t, subj, obj)
	if err != nil {
		return relation.Relation{}, false, err
	}
	if !res.Found() {
		return relation.Relation{}, false, nil
	}

	neg, err := e.negation.IsNegated(t, res.Index)
	if err != nil {
		return relation.Relation{}, false, err
	}
	if !neg {
		neg, err = e.negation.NounIsNegated(t, res.ObjectHead)
		if err != nil {
			return relation.Relation{}, false, err
		}
	}

	return e.assembler.Assemble(subj, obj, res, neg), true, nil
}

// typed returns a copy of a common noun mention with the type given by the
// typer.
func (e *Extractor) typed(t *tree.Tree, m entity.Mention) entity.Mention {
	if m.Class != entity.Common || e.typer == nil {
		return m
	}

	lemma := m.Name
	if n, err := t.Node(m.Start); err == nil && n.Lemma != "" {
		lemma = n.Lemma
	}
	m.Type = string(e.typer.Classify(lemma))
	return m
}

// Doc extracts all sentences of doc in id order and calls fn for each of
// them. Malformed sentences are logged and skipped; their number is
// returned. An error of fn stops the iteration.
func (e *Extractor) Doc(doc sent.Doc, fn func(Result) error) (int, error) {
	sentences := make([]sent.Sentence, len(doc.Sentences))
	copy(sentences, doc.Sentences)
	sort.SliceStable(sentences, func(i, j int) bool {
		return sentences[i].Id < sentences[j].Id
	})

	malformed := 0
	for _, s := range sentences {
		s.DocId = doc.Id
		res, err := e.Sentence(s)
		if err != nil {
			malformed++
			e.logger.Warn("extract: sentence skipped", "doc", doc.Id, "title", doc.Title, "sentence", s.Id, "error", err)
			continue
		}

		if err := fn(res); err != nil {
			return malformed, err
		}
	}

	return malformed, nil
}
