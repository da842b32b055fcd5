// Package predicate finds the predicate linking a subject and an object
// mention in a dependency tree.
package predicate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/revelaction/binrel/entity"
	"github.com/revelaction/binrel/tree"
)

var ErrCycle = tree.ErrCycle

// Result of a resolution. An empty Lemma means the pair is not related.
type Result struct {
	Lemma string

	// Index is the predicate token, -1 when there is none
	Index int

	Passive bool

	// SubjectHead and ObjectHead are the tokens chosen as heads of the
	// mentions.
	SubjectHead int
	ObjectHead  int
}

func (r Result) Found() bool {
	return r.Lemma != ""
}

// Resolver is immutable and safe for concurrent use.
type Resolver struct {
	cfg     Config
	subject entity.RoleSet
	object  entity.RoleSet
	verbs   map[string]map[string]struct{}
}

func New(cfg Config) *Resolver {
	c := cfg
	c.SubjectRoles = slices.Clone(cfg.SubjectRoles)
	c.ObjectRoles = slices.Clone(cfg.ObjectRoles)
	c.VerbMap = nil

	verbs := make(map[string]map[string]struct{}, len(cfg.VerbMap))
	for verb, collocations := range cfg.VerbMap {
		set := make(map[string]struct{}, len(collocations))
		for _, col := range collocations {
			set[col] = struct{}{}
		}
		verbs[verb] = set
	}

	return &Resolver{
		cfg:     c,
		subject: entity.NewRoleSet(c.SubjectRoles...),
		object:  entity.NewRoleSet(c.ObjectRoles...),
		verbs:   verbs,
	}
}

// Resolve returns the predicate of the pair (subj, obj). Lookup failures
// (*tree.MissingNodeError) and cycles are returned as errors; callers skip the
// pair.
func (r *Resolver) Resolve(t *tree.Tree, subj, obj entity.Mention) (Result, error) {
	res := Result{Index: -1}

	if r.cfg.RequireTokenOrder && subj.Start >= obj.Start {
		return res, nil
	}

	sh, err := subj.HeadFor(t, r.subject)
	if err != nil {
		return res, err
	}
	oh, err := obj.HeadFor(t, r.object)
	if err != nil {
		return res, err
	}
	res.SubjectHead = sh.Index
	res.ObjectHead = oh.Index

	if !r.subject.Contains(sh.Rel) {
		return res, nil
	}

	switch {
	case r.object.Contains(oh.Rel):
		return r.verbal(t, sh, oh, res)
	case oh.Rel == r.cfg.NmodRel:
		return r.attachment(t, sh, oh, res)
	}

	return res, nil
}

func (r *Resolver) verbal(t *tree.Tree, sh, oh entity.Head, res Result) (Result, error) {
	res.Passive = sh.Rel == r.cfg.PassiveRel

	sn, err := t.Node(sh.Index)
	if err != nil {
		return res, err
	}
	on, err := t.Node(oh.Index)
	if err != nil {
		return res, err
	}

	shared := sn.Head == on.Head
	if !shared {
		// object attached to an open clausal complement of the subject's head
		objHead, err := t.Node(on.Head)
		if err != nil {
			return res, err
		}
		shared = objHead.Head == sn.Head && objHead.Rel == r.cfg.XcompRel
	}
	if !shared {
		return res, nil
	}

	pred, err := t.Node(sn.Head)
	if err != nil {
		return res, err
	}

	var b strings.Builder
	b.WriteString(pred.Lemma)

	for _, c := range pred.Deps[r.cfg.ParticleRel] {
		n, err := t.Node(c)
		if err != nil {
			return res, err
		}
		b.WriteString("_" + n.Lemma)
	}

	if r.cfg.LightVerbs {
		col, err := r.lightVerb(t, pred, b.String())
		if err != nil {
			return res, err
		}
		if col != "" {
			b.WriteString("_" + strings.ReplaceAll(col, " ", "_"))
		}
	}

	mods, err := r.modifiers(t, pred.Index, map[int]bool{})
	if err != nil {
		return res, err
	}
	for _, m := range mods {
		b.WriteString("." + m)
	}

	for _, c := range t.Children(oh.Index, r.cfg.CaseRel) {
		n, err := t.Node(c)
		if err != nil {
			return res, err
		}
		b.WriteString("." + n.Lemma)
	}

	res.Lemma = b.String()
	res.Index = pred.Index
	return res, nil
}

// lightVerb returns the first "<preposition> <noun>" collocation of the verb
// found among the noun dependents of pred, in token order.
func (r *Resolver) lightVerb(t *tree.Tree, pred *tree.Node, verb string) (string, error) {
	set, ok := r.verbs[verb]
	if !ok {
		return "", nil
	}

	for i := range t.Indices() {
		if !t.IsChild(pred.Index, i) {
			continue
		}
		n, err := t.Node(i)
		if err != nil {
			return "", err
		}
		cases := n.Deps[r.cfg.CaseRel]
		if n.CTag != r.cfg.NounTag || len(cases) == 0 {
			continue
		}

		prep, err := t.Node(cases[0])
		if err != nil {
			return "", err
		}
		col := prep.Lemma + " " + n.Lemma
		if _, ok := set[col]; ok {
			return col, nil
		}
	}

	return "", nil
}

// modifiers collects the lemmas of infinitive verbs chained by xcomp below i,
// depth first.
func (r *Resolver) modifiers(t *tree.Tree, i int, visited map[int]bool) ([]string, error) {
	if visited[i] {
		return nil, fmt.Errorf("predicate: %w in modifier chain at token %d", ErrCycle, i)
	}
	visited[i] = true

	var mods []string
	for _, c := range t.Children(i, r.cfg.XcompRel) {
		n, err := t.Node(c)
		if err != nil {
			return nil, err
		}
		if n.Tag != r.cfg.ModifierTag {
			continue
		}
		mods = append(mods, n.Lemma)

		sub, err := r.modifiers(t, c, visited)
		if err != nil {
			return nil, err
		}
		mods = append(mods, sub...)
	}
	return mods, nil
}

// attachment handles objects attached as nominal modifiers: copula and
// possession constructions.
func (r *Resolver) attachment(t *tree.Tree, sh, oh entity.Head, res Result) (Result, error) {
	sn, err := t.Node(sh.Index)
	if err != nil {
		return res, err
	}
	head, err := t.Node(sn.Head)
	if err != nil {
		return res, err
	}

	if r.cfg.CopulaAttachment {
		lemma, err := r.copula(t, head, oh)
		if err != nil {
			return res, err
		}
		if lemma != "" {
			res.Lemma, res.Index = lemma, head.Index
			return res, nil
		}
	}

	if r.cfg.PossessionAttachment {
		lemma, err := r.possession(t, head, oh)
		if err != nil {
			return res, err
		}
		if lemma != "" {
			res.Lemma, res.Index = lemma, head.Index
			return res, nil
		}
	}

	return res, nil
}

// copula: "Merkel ist Mitglied in der CDU" gives Mitglied_sein.in
func (r *Resolver) copula(t *tree.Tree, head *tree.Node, oh entity.Head) (string, error) {
	cops := head.Deps[r.cfg.CopRel]
	if len(cops) == 0 {
		return "", nil
	}

	mods := head.Deps[r.cfg.NmodRel]
	if len(mods) == 0 {
		mods = head.Deps[r.cfg.AdvmodRel]
	}
	if len(mods) == 0 {
		return "", nil
	}

	cop, err := t.Node(cops[0])
	if err != nil {
		return "", err
	}
	if cop.Lemma != r.cfg.Copula || !slices.Contains(mods, oh.Index) {
		return "", nil
	}

	pred := head.Lemma + "_" + r.cfg.Copula
	if cases := t.Children(oh.Index, r.cfg.CaseRel); len(cases) > 0 {
		c, err := t.Node(cases[0])
		if err != nil {
			return "", err
		}
		pred += "." + c.Lemma
	}
	return pred, nil
}

// possession: "Merkel hat ein Haus in Berlin" gives haben_Haus
func (r *Resolver) possession(t *tree.Tree, head *tree.Node, oh entity.Head) (string, error) {
	if head.Lemma != r.cfg.Possessive || !t.Has(oh.Index, r.cfg.CaseRel) {
		return "", nil
	}

	objs := head.Deps[r.cfg.ObjRel]
	for i := range t.Indices() {
		if !slices.Contains(objs, i) {
			continue
		}
		n, err := t.Node(i)
		if err != nil {
			return "", err
		}
		if n.CTag == r.cfg.NounTag && slices.Contains(n.Deps[r.cfg.NmodRel], oh.Index) {
			return head.Lemma + "_" + n.Lemma, nil
		}
	}
	return "", nil
}
