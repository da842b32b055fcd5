package main

import (
	"fmt"

	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/render"
	"github.com/revelaction/binrel/storage"
	"github.com/urfave/cli/v2"
)

func typesCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "types",
		Usage:     "print the type tags of all extracted relations",
		ArgsUsage: "<doc dir or .db>",
		Flags:     lexiconFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("types: expected one doc repository, got %d args", c.NArg())
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			applyLexiconFlags(c, cfg)

			p := &Pool{}
			defer p.Close()

			repo, err := NewDocRepository(p, c.Args().First())
			if err != nil {
				return err
			}

			e, err := newExtractor(cfg, p, newLogger(c, ui))
			if err != nil {
				return err
			}
			return typesCommand(repo, e, ui)
		},
	}
}

func typesCommand(repo storage.DocReader, e *extract.Extractor, ui UI) error {
	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, meta := range docs {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			return err
		}
		if _, err := e.Doc(doc, func(extract.Result) error { return nil }); err != nil {
			return err
		}
	}

	return render.TypeList(ui.Out, e.Types())
}
