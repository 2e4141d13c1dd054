package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"incidentdesk/internal/analytics"
	"incidentdesk/internal/export"
	"incidentdesk/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Write a report file for a period",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, xlsx or pdf", Value: string(export.FormatCSV)},
		&cli.StringFlag{Name: "window", Aliases: []string{"w"}, Usage: "last7, last30, last90, month or custom", Value: string(analytics.WindowLast30)},
		&cli.StringFlag{Name: "start", Usage: "First day of a custom window, YYYY-MM-DD"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path, defaults to the generated file name"},
		&cli.BoolFlag{Name: "archive", Usage: "Also upload the file to REPORT_BUCKET"},
	},
	Action: runExport,
}

func runExport(c *cli.Context) error {
	ctx := context.Background()
	now := time.Now()

	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	window, err := analytics.ParseWindow(c.String("window"))
	if err != nil {
		return err
	}

	cutoff, err := analytics.Cutoff(window, now, c.String("start"))
	if err != nil {
		return err
	}

	a, err := setup(ctx, c.String("env-prefix"))
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.incidents.List(ctx)
	if err != nil {
		return err
	}
	records = analytics.SelectSince(records, cutoff)

	period := fmt.Sprintf("%s (since %s)", window.Label(), cutoff.Format(types.DateLayout))
	body, err := export.Build(format, records, period, now)
	if err != nil {
		return err
	}

	fileName := export.FileName(format, now)
	out := c.String("out")
	if out == "" {
		out = fileName
	}

	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	a.logger.WithFields(logrus.Fields{
		"file":    out,
		"records": len(records),
		"period":  period,
	}).Info("report written")

	if !c.Bool("archive") {
		return nil
	}

	archive, err := reportArchive(ctx, a.config)
	if err != nil {
		return err
	}
	if archive == nil {
		return fmt.Errorf("set REPORT_BUCKET to archive reports")
	}

	key, err := archive.Upload(ctx, fileName, export.ContentType(format), body, now)
	if err != nil {
		return err
	}

	a.logger.WithField("location", archive.ObjectURL(key)).Info("report archived")

	return nil
}
