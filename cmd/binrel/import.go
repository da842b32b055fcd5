package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/revelaction/binrel/storage/filesystem"
	"github.com/revelaction/binrel/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

type ImportOptions struct {
	From       string
	To         string
	NoProgress bool
}

func importArgs(c *cli.Context) (ImportOptions, error) {
	if c.NArg() != 2 {
		return ImportOptions{}, fmt.Errorf("%s: expected <from> <to.db>, got %d args", c.Command.Name, c.NArg())
	}
	opts := ImportOptions{
		From:       c.Args().Get(0),
		To:         c.Args().Get(1),
		NoProgress: c.Bool("no-progress"),
	}
	if !isDB(opts.To) {
		return opts, fmt.Errorf("%s: destination must be a %s file: %s", c.Command.Name, dbExt, opts.To)
	}
	return opts, nil
}

func importDocCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import-doc",
		Usage:     "import a directory of JSON or CoNLL-U docs into SQLite",
		ArgsUsage: "<doc dir> <to.db>",
		Flags:     []cli.Flag{&cli.BoolFlag{Name: "no-progress", Usage: "do not render the progress bar"}},
		Action: func(c *cli.Context) error {
			opts, err := importArgs(c)
			if err != nil {
				return err
			}
			return importDocCommand(opts, ui)
		},
	}
}

func importLexiconCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import-lexicon",
		Usage:     "import a TSV hypernym lexicon into SQLite",
		ArgsUsage: "<lexicon.tsv> <to.db>",
		Action: func(c *cli.Context) error {
			opts, err := importArgs(c)
			if err != nil {
				return err
			}
			return importLexiconCommand(opts, ui)
		},
	}
}

func importVerbsCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import-verbs",
		Usage:     "import a TSV light verb map into SQLite",
		ArgsUsage: "<verbs.tsv> <to.db>",
		Action: func(c *cli.Context) error {
			opts, err := importArgs(c)
			if err != nil {
				return err
			}
			return importVerbsCommand(opts, ui)
		},
	}
}

func importDocCommand(opts ImportOptions, ui UI) error {
	src, err := filesystem.NewDocStore(opts.From)
	if err != nil {
		return err
	}

	pool, err := zombiezen.Open(opts.To)
	if err != nil {
		return err
	}
	defer pool.Close()

	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(ui.Out, "Reading docs from %s...\n", opts.From)
	docs, err := src.List()
	if err != nil {
		return err
	}

	var bar *uiprogress.Bar
	if !opts.NoProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(docs))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}
	stop := func() {
		if bar != nil {
			uiprogress.Stop()
		}
	}

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			stop()
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		if err := dst.Write(doc); err != nil {
			stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
		if bar != nil {
			bar.Incr()
		}
	}
	stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}

func importLexiconCommand(opts ImportOptions, ui UI) error {
	src, err := filesystem.NewLexiconStore(opts.From)
	if err != nil {
		return err
	}

	pool, err := zombiezen.Open(opts.To)
	if err != nil {
		return err
	}
	defer pool.Close()

	entries := src.Entries()
	if err := zombiezen.NewLexiconStore(pool).WriteHypernyms(entries); err != nil {
		return fmt.Errorf("failed to write lexicon: %w", err)
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d lemmas from %s to %s\n", len(entries), opts.From, opts.To)
	return nil
}

func importVerbsCommand(opts ImportOptions, ui UI) error {
	if _, err := os.Stat(opts.From); err != nil {
		return fmt.Errorf("verb map not found: %s", opts.From)
	}

	m, err := filesystem.ReadVerbMapFile(opts.From)
	if err != nil {
		return err
	}

	pool, err := zombiezen.Open(opts.To)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.NewLexiconStore(pool).WriteVerbMap(m); err != nil {
		return fmt.Errorf("failed to write verb map: %w", err)
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d verbs from %s to %s\n", len(m), opts.From, opts.To)
	return nil
}
