package stat

import (
	"testing"

	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/relation"
)

func TestAggregate(t *testing.T) {
	h := NewHandler()
	h.Aggregate(extract.Result{
		Pairs:   4,
		Skipped: 1,
		Relations: []relation.Relation{
			{Predicate: "besuchen", Negated: true},
			{Predicate: "besuchen.von", Passive: true},
		},
	})
	h.Aggregate(extract.Result{Pairs: 2})
	h.AddDoc(3)

	s := h.Get()
	if s.NumSentences != 2 {
		t.Errorf("expected 2 sentences, got %d", s.NumSentences)
	}
	if s.NumRelations != 2 || s.NumNegated != 1 || s.NumPassive != 1 {
		t.Errorf("unexpected relation counts %+v", s)
	}
	if s.NumPairs != 6 || s.NumSkipped != 1 {
		t.Errorf("unexpected pair counts %+v", s)
	}
	if s.RelationsPerSentenceMean != 1 {
		t.Errorf("expected mean 1, got %f", s.RelationsPerSentenceMean)
	}
	if s.PredicateDis["besuchen"] != 1 {
		t.Errorf("expected besuchen once, got %d", s.PredicateDis["besuchen"])
	}
	if s.NumDocs != 1 || s.NumMalformed != 3 {
		t.Errorf("unexpected doc counts %+v", s)
	}
}
