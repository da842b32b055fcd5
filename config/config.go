package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/revelaction/binrel/negation"
	"github.com/revelaction/binrel/predicate"
	"github.com/revelaction/binrel/typing"
)

type NegationConfig struct {
	Rel           string `toml:"rel"`
	ParticleTag   string `toml:"particle_tag"`
	DeterminerTag string `toml:"determiner_tag"`
}

func (n NegationConfig) Resolver() negation.Resolver {
	return negation.Resolver{
		Rel:           n.Rel,
		ParticleTag:   n.ParticleTag,
		DeterminerTag: n.DeterminerTag,
	}
}

type TypingConfig struct {
	Rules    []typing.Rule `toml:"rules"`
	Pronouns []string      `toml:"pronouns"`
}

// LexiconConfig points to the lexical resources. A path ending in .db is
// read from SQLite, any other path as a tab separated file.
type LexiconConfig struct {
	Hypernyms string `toml:"hypernyms"`
	VerbMap   string `toml:"verb_map"`
}

type OutputConfig struct {
	Dir       string `toml:"dir"`
	HumanFile string `toml:"human_file"`
	JSONFile  string `toml:"json_file"`
	TypesFile string `toml:"types_file"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	Extraction predicate.Config `toml:"extraction"`
	Negation   NegationConfig   `toml:"negation"`
	Typing     TypingConfig     `toml:"typing"`
	Lexicon    LexiconConfig    `toml:"lexicon"`
	Output     OutputConfig     `toml:"output"`
	Graph      GraphConfig      `toml:"graph"`
	Server     ServerConfig     `toml:"server"`
}

func Default() *Config {
	neg := negation.Default()
	return &Config{
		Extraction: predicate.DefaultConfig(),
		Negation: NegationConfig{
			Rel:           neg.Rel,
			ParticleTag:   neg.ParticleTag,
			DeterminerTag: neg.DeterminerTag,
		},
		Typing: TypingConfig{
			Rules:    typing.DefaultRules(),
			Pronouns: typing.DefaultPronouns(),
		},
		Output: OutputConfig{
			Dir:       ".",
			HumanFile: "binary_relations.txt",
			JSONFile:  "binary_relations.json",
			TypesFile: "types.txt",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a TOML file over the defaults: keys absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
