package extract

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/revelaction/binrel/entity"
	"github.com/revelaction/binrel/negation"
	"github.com/revelaction/binrel/predicate"
	"github.com/revelaction/binrel/relation"
	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(logs *bytes.Buffer) *Extractor {
	hierarchy := typing.MapHierarchy{
		"Firma": "[Synset(Firma), Synset(Unternehmen), Synset(Organisation)]",
	}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(
		predicate.New(predicate.DefaultConfig()),
		negation.Default(),
		typing.New(hierarchy),
		relation.NewAssembler(nil),
		WithLogger(logger),
	)
}

func merkelSentence() sent.Sentence {
	// Merkel besuchte die DDR
	return sent.Sentence{
		Id: 3,
		Tokens: []sent.Token{
			{Id: 1, Text: "Merkel", Lemma: "Merkel", Pos: "PROPN", Head: 2, Dep: "nsubj"},
			{Id: 2, Text: "besuchte", Lemma: "besuchen", Pos: "VERB", Tag: "VVFIN", Head: 0, Dep: "ROOT"},
			{Id: 3, Text: "die", Lemma: "der", Pos: "DET", Head: 4, Dep: "det"},
			{Id: 4, Text: "DDR", Lemma: "DDR", Pos: "PROPN", Head: 2, Dep: "obj"},
		},
		Entities: map[string]sent.Mention{
			"1": {Start: 1, Name: "Merkel", URL: "http://de.wikipedia.org/wiki/Angela_Merkel", Type: "/person/politician", Class: "ner"},
			"4": {Start: 4, Name: "DDR", URL: "http://de.wikipedia.org/wiki/DDR", Type: "/location/country", Class: "ner"},
		},
	}
}

func TestSentenceMerkelDDR(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	res, err := e.Sentence(merkelSentence())
	require.NoError(t, err)

	assert.Equal(t, "Merkel besuchte die DDR", res.Text)
	assert.Equal(t, 2, res.Pairs)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Relations, 1)

	r := res.Relations[0]
	assert.Equal(t, "(besuchen.1,besuchen.2)#person#location::Angela_Merkel::DDR|||(passive: False)", r.Display)
	assert.Equal(t, "((besuchen.1,besuchen.2)::Angela_Merkel::DDR::#person::#location::EE::0::2)", r.Record())
	assert.Equal(t, []string{"#location", "#person"}, e.Types().Sorted())
}

func TestSentenceNegatingDeterminer(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	// Merkel hat keine Firma
	s := sent.Sentence{
		Id: 1,
		Tokens: []sent.Token{
			{Id: 1, Text: "Merkel", Lemma: "Merkel", Pos: "PROPN", Head: 2, Dep: "nsubj"},
			{Id: 2, Text: "hat", Lemma: "haben", Pos: "VERB", Tag: "VAFIN", Head: 0, Dep: "ROOT"},
			{Id: 3, Text: "keine", Lemma: "kein", Pos: "DET", Tag: "PIAT", Head: 4, Dep: "advmod"},
			{Id: 4, Text: "Firma", Lemma: "Firma", Pos: "NOUN", Tag: "NN", Head: 2, Dep: "obj"},
		},
		Entities: map[string]sent.Mention{
			"1": {Start: 1, Name: "Merkel", URL: "http://x/Angela_Merkel", Type: "/person", Class: "ner"},
			"4": {Start: 4, Name: "Firma", URL: "Firma", Type: "NOUN"},
		},
	}

	res, err := e.Sentence(s)
	require.NoError(t, err)
	require.Len(t, res.Relations, 1)

	r := res.Relations[0]
	assert.True(t, r.Negated)
	assert.Equal(t, "NEG__(haben.1,haben.2)#person#ORGANIZATION::Angela_Merkel::Firma|||(passive: False)", r.Display)
	assert.Equal(t, "(NEG__(haben.1,haben.2)::Angela_Merkel::Firma::#person::#ORGANIZATION::EG::0::2)", r.Record())
}

func TestSentencePassiveSwap(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	// Die DDR wurde von Merkel nicht besucht
	s := sent.Sentence{
		Id: 2,
		Tokens: []sent.Token{
			{Id: 1, Text: "Die", Lemma: "der", Head: 2, Dep: "det"},
			{Id: 2, Text: "DDR", Lemma: "DDR", Head: 7, Dep: "nsubj:pass"},
			{Id: 3, Text: "wurde", Lemma: "werden", Head: 7, Dep: "aux:pass"},
			{Id: 4, Text: "von", Lemma: "von", Head: 5, Dep: "case"},
			{Id: 5, Text: "Merkel", Lemma: "Merkel", Head: 7, Dep: "obl"},
			{Id: 6, Text: "nicht", Lemma: "nicht", Tag: "PTKNEG", Head: 7, Dep: "advmod"},
			{Id: 7, Text: "besucht", Lemma: "besuchen", Tag: "VVPP", Head: 0, Dep: "ROOT"},
		},
		Entities: map[string]sent.Mention{
			"2": {Start: 2, Name: "DDR", URL: "http://x/DDR", Type: "/location", Class: "ner"},
			"5": {Start: 5, Name: "Merkel", URL: "http://x/Angela_Merkel", Type: "/person", Class: "ner"},
		},
	}

	res, err := e.Sentence(s)
	require.NoError(t, err)
	require.Len(t, res.Relations, 1)

	r := res.Relations[0]
	assert.True(t, r.Passive)
	assert.True(t, r.Negated)
	assert.Equal(t, "Merkel", r.Subject.Name)
	assert.Equal(t, "DDR", r.Object.Name)
	assert.Equal(t, "NEG__(besuchen.von.1,besuchen.von.2)#person#location::Angela_Merkel::DDR|||(passive: True)", r.Display)
}

func TestPairsExcludeSelfAndCommonCommon(t *testing.T) {
	ms := []entity.Mention{
		{Key: "a", Class: entity.Common},
		{Key: "b", Class: entity.Named},
		{Key: "c", Class: entity.Common},
	}

	var got [][2]string
	for s, o := range Pairs(ms) {
		assert.NotEqual(t, s.Key, o.Key)
		got = append(got, [2]string{s.Key, o.Key})
	}

	assert.Equal(t, [][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}}, got)
}

func TestSentenceSkipsPairOnMissingNode(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	s := merkelSentence()
	// the object hangs from a token that does not exist
	s.Tokens[3].Head = 9

	res, err := e.Sentence(s)
	require.NoError(t, err)
	assert.Empty(t, res.Relations)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, logs.String(), "extract: pair skipped")
}

func TestSentenceMalformed(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	s := merkelSentence()
	s.Entities["9"] = sent.Mention{Start: 0, Name: "x"}

	_, err := e.Sentence(s)
	assert.True(t, errors.Is(err, ErrMalformedSentence))
	assert.True(t, errors.Is(err, entity.ErrInvalidStart))
}

func TestDocSkipsMalformedSentences(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(&logs)

	good := merkelSentence()
	bad := sent.Sentence{Id: 1}
	doc := sent.Doc{Id: 7, Title: "news", Sentences: []sent.Sentence{good, bad}}

	var seen []Result
	malformed, err := e.Doc(doc, func(r Result) error {
		seen = append(seen, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, malformed)
	require.Len(t, seen, 1)
	assert.Equal(t, 7, seen[0].Sentence.DocId)
	assert.Contains(t, logs.String(), "extract: sentence skipped")

	stop := errors.New("disk full")
	_, err = e.Doc(doc, func(Result) error { return stop })
	assert.ErrorIs(t, err, stop)
}
