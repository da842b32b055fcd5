package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/revelaction/binrel/config"
	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/predicate"
	"github.com/revelaction/binrel/relation"
	"github.com/revelaction/binrel/storage"
	"github.com/revelaction/binrel/storage/filesystem"
	"github.com/revelaction/binrel/storage/sqlite/zombiezen"
	"github.com/revelaction/binrel/typing"
	"github.com/urfave/cli/v2"
)

const dbExt = ".db"

func isDB(path string) bool {
	return filepath.Ext(path) == dbExt
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(c *cli.Context, ui UI) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(ui.Err, &slog.HandlerOptions{Level: level}))
}

func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// NewHierarchy returns nil for an empty path: common nouns are then only
// typed by the pronoun fallback.
func NewHierarchy(p *Pool, path string) (typing.Hierarchy, error) {
	if path == "" {
		return nil, nil
	}

	if !isDB(path) {
		return filesystem.NewLexiconStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewLexiconStore(pool), nil
}

func LoadVerbMap(p *Pool, path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}

	if !isDB(path) {
		return filesystem.ReadVerbMapFile(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewLexiconStore(pool).VerbMap()
}

func newExtractor(cfg *config.Config, p *Pool, logger *slog.Logger) (*extract.Extractor, error) {
	h, err := NewHierarchy(p, cfg.Lexicon.Hypernyms)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}

	verbs, err := LoadVerbMap(p, cfg.Lexicon.VerbMap)
	if err != nil {
		return nil, fmt.Errorf("verb map: %w", err)
	}

	pc := cfg.Extraction
	pc.VerbMap = verbs

	typer := typing.New(h,
		typing.WithRules(cfg.Typing.Rules),
		typing.WithPronouns(cfg.Typing.Pronouns),
		typing.WithLogger(logger),
	)

	return extract.New(
		predicate.New(pc),
		cfg.Negation.Resolver(),
		typer,
		relation.NewAssembler(nil),
		extract.WithLogger(logger),
	), nil
}

// lexiconFlags override the lexicon paths of the configuration
func lexiconFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "lexicon",
			Usage:   "hypernym lexicon, a TSV file or a .db",
			EnvVars: envVars("LEXICON"),
		},
		&cli.StringFlag{
			Name:    "verbs",
			Usage:   "light verb collocations, a TSV file or a .db",
			EnvVars: envVars("VERBS"),
		},
	}
}

func applyLexiconFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("lexicon") {
		cfg.Lexicon.Hypernyms = c.String("lexicon")
	}
	if c.IsSet("verbs") {
		cfg.Lexicon.VerbMap = c.String("verbs")
	}
}
