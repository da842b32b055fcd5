package sentence

import (
	"sort"
	"strconv"
)

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is a parsed sentence together with the entity-linking output for
// it.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`

	// Entities is keyed by an arbitrary entity key, usually the start token.
	Entities map[string]Mention `json:"entities,omitempty"`
}

// EntityKeys returns the keys of the entities map, numerically sorted when
// the keys are numbers.
func (s Sentence) EntityKeys() []string {
	keys := make([]string, 0, len(s.Entities))
	for k := range s.Entities {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// Id is the 1-based position of the token in the sentence, as written by
	// the dependency parser.
	Id int `json:"id"`

	// Head is the Id of the governor. 0 is the root sentinel.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Mention is one record of the entity-linking output.
type Mention struct {
	// Start is the Id of the first token of the mention
	Start int `json:"start"`

	// Name is the surface string of the mention
	Name string `json:"name"`

	// URL is the knowledge base identifier. Unresolved mentions carry the
	// notInWiki marker or nothing.
	URL string `json:"url"`

	// Type is the fine grained semantic type (FIGER path, or NOUN for
	// common nouns in the German pipeline)
	Type string `json:"type"`

	// Class is "ner" for named entities and "com" for common nouns
	Class string `json:"class"`
}
