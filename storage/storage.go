package storage

import (
	"context"

	"github.com/revelaction/binrel/extract"
	sent "github.com/revelaction/binrel/sentence"
)

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document, its sentences and their entities
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// LexiconReader returns the hypernym paths of a lemma. It satisfies
// typing.Hierarchy.
type LexiconReader interface {
	HypernymPaths(lemma string) (string, error)
}

// LexiconWriter persists hypernym paths keyed by lemma
type LexiconWriter interface {
	WriteHypernyms(entries map[string]string) error
}

// VerbMapReader returns the light verb collocations keyed by verb lemma
type VerbMapReader interface {
	VerbMap() (map[string][]string, error)
}

// VerbMapWriter persists light verb collocations
type VerbMapWriter interface {
	WriteVerbMap(m map[string][]string) error
}

// StoredRelation is a relation as persisted by a RelationWriter.
type StoredRelation struct {
	Run         string
	DocId       int
	SentenceId  int
	Sentence    string
	Predicate   string
	Subject     string
	Object      string
	SubjectType string
	ObjectType  string
	Negated     bool
	Passive     bool

	// Line is the human readable form, Record the JSON record form
	Line   string
	Record string
}

// RelationWriter persists the relations of extracted sentences
type RelationWriter interface {
	WriteRelations(ctx context.Context, docId int, results []extract.Result) error
}

// RelationReader queries persisted relations
type RelationReader interface {
	// FindByPredicate returns relations whose predicate matches the SQL LIKE
	// pattern, at most limit of them.
	FindByPredicate(ctx context.Context, pattern string, limit int) ([]StoredRelation, error)

	// Predicates returns the distinct predicates starting with prefix,
	// sorted alphabetically.
	Predicates(ctx context.Context, prefix string) ([]string, error)
}

// Stored converts the relations of one extracted sentence.
func Stored(run string, docId int, res extract.Result) []StoredRelation {
	out := make([]StoredRelation, 0, len(res.Relations))
	for _, r := range res.Relations {
		out = append(out, StoredRelation{
			Run:         run,
			DocId:       docId,
			SentenceId:  res.Sentence.Id,
			Sentence:    res.Text,
			Predicate:   r.Predicate,
			Subject:     r.Subject.Display(),
			Object:      r.Object.Display(),
			SubjectType: r.Subject.TypeTag(),
			ObjectType:  r.Object.TypeTag(),
			Negated:     r.Negated,
			Passive:     r.Passive,
			Line:        r.Display,
			Record:      r.Record(),
		})
	}
	return out
}
