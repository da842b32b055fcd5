package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/revelaction/binrel/config"
	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/render"
	"github.com/revelaction/binrel/stat"
	"github.com/revelaction/binrel/storage"
	"github.com/revelaction/binrel/storage/graph"
	"github.com/revelaction/binrel/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

type ExtractOptions struct {
	DocPath    string
	DB         string
	Graph      bool
	NoProgress bool
}

func extractCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract the relations of all docs into the output files",
		ArgsUsage: "<doc dir or .db>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output directory",
				EnvVars: envVars("OUT"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "also store the relations in this SQLite database",
				EnvVars: envVars("DB"),
			},
			&cli.BoolFlag{
				Name:  "graph",
				Usage: "also export the relations to the configured Neo4j database",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "do not render the progress bar",
			},
		}, lexiconFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("extract: expected one doc repository, got %d args", c.NArg())
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			applyLexiconFlags(c, cfg)
			if c.IsSet("out") {
				cfg.Output.Dir = c.String("out")
			}
			applyGraphEnv(cfg)

			opts := ExtractOptions{
				DocPath:    c.Args().First(),
				DB:         c.String("db"),
				Graph:      c.Bool("graph"),
				NoProgress: c.Bool("no-progress"),
			}
			return extractCommand(c.Context, cfg, opts, newLogger(c, ui), ui)
		},
	}
}

// applyGraphEnv lets the environment override the graph connection. The
// password is usually kept out of the config file.
func applyGraphEnv(cfg *config.Config) {
	for name, field := range map[string]*string{
		"GRAPH_URI":      &cfg.Graph.URI,
		"GRAPH_USER":     &cfg.Graph.User,
		"GRAPH_PASSWORD": &cfg.Graph.Password,
		"GRAPH_DATABASE": &cfg.Graph.Database,
	} {
		if v := os.Getenv(envPrefix + name); v != "" {
			*field = v
		}
	}
}

func createOutput(dir, name string) (*os.File, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	return f, nil
}

func extractCommand(ctx context.Context, cfg *config.Config, opts ExtractOptions, logger *slog.Logger, ui UI) error {
	p := &Pool{}
	defer p.Close()

	repo, err := NewDocRepository(p, opts.DocPath)
	if err != nil {
		return err
	}

	e, err := newExtractor(cfg, p, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	human, err := createOutput(cfg.Output.Dir, cfg.Output.HumanFile)
	if err != nil {
		return err
	}
	defer human.Close()

	records, err := createOutput(cfg.Output.Dir, cfg.Output.JSONFile)
	if err != nil {
		return err
	}
	defer records.Close()

	run := uuid.NewString()
	var writers []storage.RelationWriter

	if opts.DB != "" {
		pool, err := p.Open(opts.DB)
		if err != nil {
			return err
		}
		rs := zombiezen.NewRelationStore(pool)
		run = rs.Run()
		writers = append(writers, rs)
	}

	if opts.Graph {
		if cfg.Graph.URI == "" {
			return fmt.Errorf("--graph given but no graph uri configured")
		}
		d, err := graph.NewDriver(ctx, cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password, cfg.Graph.Database)
		if err != nil {
			return fmt.Errorf("graph: %w", err)
		}
		defer d.Close(ctx)

		gw := graph.NewWriter(d, run, logger)
		gw.BuildIndices(ctx)
		writers = append(writers, gw)
	}

	logger.Info("extract: run started", "run", run, "docs", opts.DocPath, "out", cfg.Output.Dir)

	docs, err := repo.List()
	if err != nil {
		return err
	}

	var bar *uiprogress.Bar
	if !opts.NoProgress && len(docs) > 0 {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(docs))
		bar.AppendCompleted()
		bar.PrependElapsed()
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			i := b.Current() - 1
			if i < 0 {
				i = 0
			}
			return docs[i].Title
		})
		defer uiprogress.Stop()
	}

	text := render.NewTextRenderer(human)
	js := render.NewJSONRenderer(records, "")
	hdl := stat.NewHandler()

	for _, meta := range docs {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
		}

		js.ArticleId = doc.Title

		var results []extract.Result
		malformed, err := e.Doc(doc, func(res extract.Result) error {
			hdl.Aggregate(res)
			if err := text.Render(res); err != nil {
				return err
			}
			if err := js.Render(res); err != nil {
				return err
			}
			results = append(results, res)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}
		hdl.AddDoc(malformed)

		for _, w := range writers {
			if err := w.WriteRelations(ctx, doc.Id, results); err != nil {
				return err
			}
		}

		if bar != nil {
			bar.Incr()
		}
	}

	types, err := createOutput(cfg.Output.Dir, cfg.Output.TypesFile)
	if err != nil {
		return err
	}
	defer types.Close()

	if err := render.TypeList(types, e.Types()); err != nil {
		return err
	}

	return printStats(hdl.Get(), ui)
}

func printStats(s stat.Stats, ui UI) error {
	_, err := fmt.Fprintf(ui.Out,
		"📖 %d docs, ✍  %d sentences (%d malformed), %d pairs (%d skipped), %d relations (%d negated, %d passive), %.2f relations per sentence\n",
		s.NumDocs, s.NumSentences, s.NumMalformed, s.NumPairs, s.NumSkipped,
		s.NumRelations, s.NumNegated, s.NumPassive, s.RelationsPerSentenceMean)
	return err
}
