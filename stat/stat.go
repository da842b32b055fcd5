package stat

import (
	"github.com/revelaction/binrel/extract"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs      int
	NumSentences int
	NumMalformed int
	NumPairs     int
	NumSkipped   int
	NumRelations int
	NumNegated   int
	NumPassive   int

	RelationsPerSentenceMean float64

	// number of relations per predicate
	PredicateDis map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{PredicateDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(res extract.Result) {
	h.stats.NumSentences++
	h.stats.NumPairs += res.Pairs
	h.stats.NumSkipped += res.Skipped
	//
	for _, r := range res.Relations {
		h.stats.NumRelations++
		h.stats.PredicateDis[r.Predicate]++
		if r.Negated {
			h.stats.NumNegated++
		}
		if r.Passive {
			h.stats.NumPassive++
		}
	}

	h.stats.RelationsPerSentenceMean = float64(h.stats.NumRelations) / float64(h.stats.NumSentences)
}

// AddDoc counts a processed document and its malformed sentences.
func (h *Handler) AddDoc(malformed int) {
	h.stats.NumDocs++
	h.stats.NumMalformed += malformed
}
