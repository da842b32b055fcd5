package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

const envPrefix = "BINREL_"

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "binrel: %v\n", err)
}

func envVars(name string) []string {
	return []string{envPrefix + name}
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "binrel",
		Usage:     "extract binary relations from dependency parsed sentences",
		Version:   fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit),
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file",
				EnvVars: envVars("CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log debug messages to stderr",
				EnvVars: envVars("VERBOSE"),
			},
		},
		Commands: []*cli.Command{
			extractCmd(ui),
			sentenceCmd(ui),
			typesCmd(ui),
			importDocCmd(ui),
			importLexiconCmd(ui),
			importVerbsCmd(ui),
			queryCmd(ui),
			serveCmd(ui),
			{
				Name:  "bash",
				Usage: "print the bash completion script",
				Action: func(c *cli.Context) error {
					return bashCommand(ui)
				},
			},
			{
				Name:   "complete",
				Hidden: true,
				Action: func(c *cli.Context) error {
					return completeCommand(c.Args().Slice(), ui)
				},
			},
		},
	}
}
