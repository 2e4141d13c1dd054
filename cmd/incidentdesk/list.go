package main

import (
	"context"
	"fmt"

	"incidentdesk/internal/filter"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "Print stored incident reports",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "sector", Usage: "Only reports from this sector"},
		&cli.StringFlag{Name: "patient", Usage: "Patient name contains"},
		&cli.StringFlag{Name: "start", Usage: "First day, YYYY-MM-DD (needs --end)"},
		&cli.StringFlag{Name: "end", Usage: "Last day, YYYY-MM-DD (needs --start)"},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		a, err := setup(ctx, c.String("env-prefix"))
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.incidents.List(ctx)
		if err != nil {
			return err
		}

		filtered := filter.Apply(records, filter.Criteria{
			Sector:  c.String("sector"),
			Patient: c.String("patient"),
			Start:   c.String("start"),
			End:     c.String("end"),
		})

		for _, r := range filtered {
			pp.Println(r)
		}
		fmt.Printf("Showing %d of %d incidents\n", len(filtered), len(records))

		return nil
	},
}
