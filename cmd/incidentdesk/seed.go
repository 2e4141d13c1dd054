package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"incidentdesk/internal/seed"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the store with demo incident reports",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of reports to create",
			Value:   50,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "Random seed, 0 picks one from the clock",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		a, err := setup(ctx, c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to set up: %w", err)
		}
		defer a.Close()

		src := c.Int64("seed")
		if src == 0 {
			src = time.Now().UnixNano()
		}

		a.logger.WithField("count", c.Int("count")).Info("Seeding demo incidents...")

		created, err := seed.SeedIncidents(ctx, a.incidents, rand.New(rand.NewSource(src)), c.Int("count"), time.Now())
		if err != nil {
			return err
		}

		a.logger.WithField("created", created).Info("Demo incidents seeded successfully")

		return nil
	},
}
