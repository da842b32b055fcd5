// Package entity validates the entity-linking output of a sentence and
// locates the syntactic head of each mention.
package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sent "github.com/revelaction/binrel/sentence"
	"github.com/revelaction/binrel/tree"
)

// Unresolved is the marker the linker writes into the identifier of
// mentions it could not resolve.
const Unresolved = "notInWiki"

// commonNounType marks common nouns in linking output without a class.
const commonNounType = "NOUN"

var (
	ErrInvalidStart = errors.New("entity: start token must be positive")
	ErrEmptyName    = errors.New("entity: empty name")
	ErrUnknownClass = errors.New("entity: unknown class")
)

type Class int

const (
	Named Class = iota
	Common
)

func (c Class) String() string {
	if c == Common {
		return "com"
	}
	return "ner"
}

// Marker is the one letter class marker of the JSON record.
func (c Class) Marker() string {
	if c == Common {
		return "G"
	}
	return "E"
}

// ParseClass reads the linker class. An empty class falls back to the type:
// common nouns carry the NOUN type.
func ParseClass(class, typ string) (Class, error) {
	switch class {
	case "ner":
		return Named, nil
	case "com":
		return Common, nil
	case "":
		if typ == commonNounType {
			return Common, nil
		}
		return Named, nil
	}
	return Named, fmt.Errorf("%w: %q", ErrUnknownClass, class)
}

type Mention struct {
	Key        string
	Start      int
	Name       string
	ExternalID string
	Type       string
	Class      Class
}

// NewMention validates one linker record.
func NewMention(key string, raw sent.Mention) (Mention, error) {
	if raw.Start <= 0 {
		return Mention{}, fmt.Errorf("%w: key %s start %d", ErrInvalidStart, key, raw.Start)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return Mention{}, fmt.Errorf("%w: key %s", ErrEmptyName, key)
	}

	class, err := ParseClass(raw.Class, raw.Type)
	if err != nil {
		return Mention{}, fmt.Errorf("key %s: %w", key, err)
	}

	return Mention{
		Key:        key,
		Start:      raw.Start,
		Name:       raw.Name,
		ExternalID: raw.URL,
		Type:       raw.Type,
		Class:      class,
	}, nil
}

// Resolved reports whether the linker found a knowledge base entry.
func (m Mention) Resolved() bool {
	return m.ExternalID != "" && !strings.Contains(m.ExternalID, Unresolved)
}

// Display is the identity written in relation strings.
func (m Mention) Display() string {
	if !m.Resolved() {
		return strings.ReplaceAll(m.Name, " ", "_")
	}
	return TrailingSegment(m.ExternalID)
}

// TypeTag is the "#" prefixed semantic type. FIGER paths keep their first
// segment, a missing type becomes #thing.
func (m Mention) TypeTag() string {
	typ := strings.TrimSpace(m.Type)
	if typ == "" || typ == "none" {
		return "#thing"
	}

	if strings.HasPrefix(typ, "/") {
		parts := strings.Split(typ, "/")
		if len(parts) > 1 && parts[1] != "" {
			return "#" + parts[1]
		}
		return "#thing"
	}

	return "#" + strings.TrimPrefix(typ, "#")
}

// Words is the number of whitespace separated words of the name, at least 1.
func (m Mention) Words() int {
	n := len(strings.Fields(m.Name))
	if n == 0 {
		return 1
	}
	return n
}

// TrailingSegment returns the text after the last "/" of id.
func TrailingSegment(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Registry holds the validated mentions of one sentence.
type Registry struct {
	mentions []Mention
}

// NewRegistry validates all records. Mentions are ordered by start token,
// then key.
func NewRegistry(raw map[string]sent.Mention) (*Registry, error) {
	mentions := make([]Mention, 0, len(raw))
	for key, r := range raw {
		m, err := NewMention(key, r)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Start != mentions[j].Start {
			return mentions[i].Start < mentions[j].Start
		}
		return mentions[i].Key < mentions[j].Key
	})

	return &Registry{mentions: mentions}, nil
}

// Mentions returns a copy of the mentions.
func (r *Registry) Mentions() []Mention {
	out := make([]Mention, len(r.mentions))
	copy(out, r.mentions)
	return out
}

func (r *Registry) Len() int {
	return len(r.mentions)
}

// RoleSet is a set of dependency relations acceptable for a grammatical role.
type RoleSet map[string]struct{}

func NewRoleSet(rels ...string) RoleSet {
	s := make(RoleSet, len(rels))
	for _, r := range rels {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Contains(rel string) bool {
	_, ok := s[rel]
	return ok
}

// Head is the token chosen as the syntactic head of a mention for a role.
type Head struct {
	Index int
	Rel   string
}

// HeadFor searches the head of the mention for a role. If the start token
// does not fill the role, the remaining tokens of a multi word mention are
// scanned and the first one that does is adopted. Otherwise the start token
// is returned with its own relation, which does not satisfy roles.
func (m Mention) HeadFor(t *tree.Tree, roles RoleSet) (Head, error) {
	start, err := t.Node(m.Start)
	if err != nil {
		return Head{}, err
	}

	if roles.Contains(start.Rel) {
		return Head{Index: start.Index, Rel: start.Rel}, nil
	}

	for i := 1; i < m.Words(); i++ {
		n, err := t.Node(m.Start + i)
		if err != nil {
			// mention runs past the sentence end
			break
		}
		if roles.Contains(n.Rel) {
			return Head{Index: n.Index, Rel: n.Rel}, nil
		}
	}

	return Head{Index: start.Index, Rel: start.Rel}, nil
}
