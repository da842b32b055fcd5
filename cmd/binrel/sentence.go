package main

import (
	"fmt"
	"strconv"

	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/render"
	"github.com/revelaction/binrel/storage"
	"github.com/urfave/cli/v2"
)

type SentenceOptions struct {
	NoColor bool
}

func sentenceCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print the tokens and the relations of one sentence",
		ArgsUsage: "<doc dir or .db> <doc id> <sentence id>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "do not color the output"},
		}, lexiconFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return fmt.Errorf("sentence: expected 3 args, got %d", c.NArg())
			}

			docId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().Get(1))
			}
			sentId, err := strconv.Atoi(c.Args().Get(2))
			if err != nil {
				return fmt.Errorf("invalid sentence id %q", c.Args().Get(2))
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

			return sentenceCommand(repo, e, SentenceOptions{NoColor: c.Bool("no-color")}, docId, sentId, ui)
		},
	}
}

func sentenceCommand(repo storage.DocReader, e *extract.Extractor, opts SentenceOptions, docId int, sentId int, ui UI) error {
	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	idx := -1
	for i, s := range doc.Sentences {
		if s.Id == sentId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("sentence %d not found in doc %d", sentId, docId)
	}

	s := doc.Sentences[idx]
	s.DocId = doc.Id

	res, err := e.Sentence(s)
	if err != nil {
		return err
	}

	highlight := map[int]bool{}
	for _, r := range res.Relations {
		highlight[r.Subject.Start] = true
		highlight[r.Object.Start] = true
		highlight[r.Index] = true
	}

	r := render.NewTextRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	if err := r.Tokens(s.Tokens, highlight); err != nil {
		return err
	}
	fmt.Fprintln(ui.Out)

	return r.Render(res)
}
