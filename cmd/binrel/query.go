package main

import (
	"fmt"

	"github.com/revelaction/binrel/query"
	"github.com/revelaction/binrel/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func queryCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "interactive search of stored relations by predicate",
		ArgsUsage: "<relations.db>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: query.DefaultLimit, Usage: "relations printed per query"},
			&cli.BoolFlag{Name: "no-color", Usage: "do not color the output"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("query: expected one database, got %d args", c.NArg())
			}

			path := c.Args().First()
			if !isDB(path) {
				return fmt.Errorf("query: not a %s file: %s", dbExt, path)
			}

			p := &Pool{}
			defer p.Close()

			pool, err := p.Open(path)
			if err != nil {
				return err
			}

			h := query.NewHandler(zombiezen.NewRelationStore(pool), ui.Out)
			h.Limit = c.Int("limit")
			h.HasColor = !c.Bool("no-color")
			return h.Run(c.Context)
		},
	}
}
