// Package relation assembles extracted relations and formats them for the
// human readable and the JSON outputs.
package relation

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/revelaction/binrel/entity"
	"github.com/revelaction/binrel/predicate"
)

const negationPrefix = "NEG__"

type Relation struct {
	Subject entity.Mention
	Object  entity.Mention

	Predicate string
	Negated   bool
	Passive   bool

	// Index is the predicate token
	Index int

	// Display is the human readable line
	Display string
}

func (r Relation) String() string {
	return r.Display
}

// Human formats the line of the human readable output:
//
//	NEG__(pred.1,pred.2)#t1#t2::e1::e2|||(passive: False)
func (r Relation) Human() string {
	return fmt.Sprintf("%s(%s.1,%s.2)%s%s::%s::%s|||(passive: %s)",
		r.negation(), r.Predicate, r.Predicate,
		r.Subject.TypeTag(), r.Object.TypeTag(),
		r.Subject.Display(), r.Object.Display(),
		pythonBool(r.Passive))
}

// Record formats the relation for the JSON output. The first argument uses
// the predicate up to its first ".".
func (r Relation) Record() string {
	head, _, _ := strings.Cut(r.Predicate, ".")
	return fmt.Sprintf("(%s(%s.1,%s.2)::%s::%s::%s::%s::%s%s::0::%d)",
		r.negation(), head, r.Predicate,
		r.Subject.Display(), r.Object.Display(),
		r.Subject.TypeTag(), r.Object.TypeTag(),
		r.Subject.Class.Marker(), r.Object.Class.Marker(),
		r.Index)
}

func (r Relation) negation() string {
	if r.Negated {
		return negationPrefix
	}
	return ""
}

// consumers of the output files parse the capitalized form
func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// TypeSet collects the type tags seen in a run. Insert only, safe for
// concurrent use.
type TypeSet struct {
	mu    sync.Mutex
	types map[string]struct{}
}

func NewTypeSet() *TypeSet {
	return &TypeSet{types: map[string]struct{}{}}
}

// Add inserts tag if absent and reports whether it was new.
func (s *TypeSet) Add(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[tag]; ok {
		return false
	}
	s.types[tag] = struct{}{}
	return true
}

func (s *TypeSet) Has(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.types[tag]
	return ok
}

func (s *TypeSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.types)
}

func (s *TypeSet) Sorted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.types))
	for t := range s.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Merge adds all tags of other.
func (s *TypeSet) Merge(other *TypeSet) {
	for _, t := range other.Sorted() {
		s.Add(t)
	}
}

type Assembler struct {
	types *TypeSet
}

func NewAssembler(types *TypeSet) *Assembler {
	if types == nil {
		types = NewTypeSet()
	}
	return &Assembler{types: types}
}

func (a *Assembler) Types() *TypeSet {
	return a.types
}

// Assemble builds the relation of a resolved pair. Passive pairs are swapped
// so that the logical agent comes first.
func (a *Assembler) Assemble(subj, obj entity.Mention, res predicate.Result, negated bool) Relation {
	if res.Passive {
		subj, obj = obj, subj
	}

	r := Relation{
		Subject:   subj,
		Object:    obj,
		Predicate: res.Lemma,
		Negated:   negated,
		Passive:   res.Passive,
		Index:     res.Index,
	}
	r.Display = r.Human()

	a.types.Add(subj.TypeTag())
	a.types.Add(obj.TypeTag())
	return r
}
