package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"incidentdesk/internal/server"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cCtx.String("env-prefix"))
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger

	var archive server.Archiver
	ra, err := reportArchive(ctx, a.config)
	if err != nil {
		return err
	}
	if ra != nil {
		archive = ra
		logger.WithField("bucket", a.config.ReportBucket).Info("report archive enabled")
	}

	srv, err := server.New(a.config, logger, a.incidents, archive)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", a.config.ServerPort).Infof("server starting http://localhost:%d", a.config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
