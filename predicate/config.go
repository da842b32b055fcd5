package predicate

// Config names the relations and tags the resolver walks. All of them can be
// changed from the configuration file; DefaultConfig matches German UD
// parses with STTS fine tags.
type Config struct {
	// SubjectRoles and ObjectRoles are the relations that let a mention fill
	// the subject and the object role.
	SubjectRoles []string `toml:"subject_roles"`
	ObjectRoles  []string `toml:"object_roles"`

	// PassiveRel marks a passive subject
	PassiveRel string `toml:"passive_rel"`

	XcompRel    string `toml:"xcomp_rel"`
	ParticleRel string `toml:"particle_rel"`
	CaseRel     string `toml:"case_rel"`
	NmodRel     string `toml:"nmod_rel"`
	AdvmodRel   string `toml:"advmod_rel"`
	CopRel      string `toml:"cop_rel"`
	ObjRel      string `toml:"obj_rel"`

	// ModifierTag is the fine tag of infinitive verbs chained by xcomp
	ModifierTag string `toml:"modifier_tag"`

	// NounTag is the coarse tag of nouns
	NounTag string `toml:"noun_tag"`

	Copula     string `toml:"copula"`
	Possessive string `toml:"possessive"`

	// VerbMap maps a verb lemma to its light verb collocations, written as
	// "<preposition> <noun>".
	VerbMap map[string][]string `toml:"-"`

	// RequireTokenOrder only relates a subject that starts before the object.
	RequireTokenOrder bool `toml:"require_token_order"`

	LightVerbs           bool `toml:"light_verbs"`
	CopulaAttachment     bool `toml:"copula_attachment"`
	PossessionAttachment bool `toml:"possession_attachment"`
}

func DefaultConfig() Config {
	return Config{
		SubjectRoles:         []string{"nsubj", "nsubj:pass", "dep"},
		ObjectRoles:          []string{"obj", "obl", "dep"},
		PassiveRel:           "nsubj:pass",
		XcompRel:             "xcomp",
		ParticleRel:          "compound:prt",
		CaseRel:              "case",
		NmodRel:              "nmod",
		AdvmodRel:            "advmod",
		CopRel:               "cop",
		ObjRel:               "obj",
		ModifierTag:          "VVINF",
		NounTag:              "NOUN",
		Copula:               "sein",
		Possessive:           "haben",
		LightVerbs:           true,
		CopulaAttachment:     true,
		PossessionAttachment: true,
	}
}
