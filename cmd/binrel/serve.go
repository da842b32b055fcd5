package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/revelaction/binrel/server"
	"github.com/urfave/cli/v2"
)

func serveCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the extraction over HTTP",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				EnvVars: envVars("ADDR"),
			},
		}, lexiconFlags()...),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			applyLexiconFlags(c, cfg)
			if c.IsSet("addr") {
				cfg.Server.Addr = c.String("addr")
			}

			logger := newLogger(c, ui)

			p := &Pool{}
			defer p.Close()

			e, err := newExtractor(cfg, p, logger)
			if err != nil {
				return err
			}

			if !c.Bool("verbose") {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: server.NewServer(e, logger).SetupRouter(),
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("serve: listening", "addr", cfg.Server.Addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdown)
		},
	}
}
