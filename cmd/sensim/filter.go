package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/ddt"
)

func filterCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "remove senses and cluster words by POS tag and word pattern",
		ArgsUsage: "<ddt> <filtered ddt>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "pos",
				Usage: "accepted POS tag, repeatable. All tags if not given",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "regular expression the full word must match, empty disables",
				Value: ddt.DefaultWordPattern,
			},
			quietFlag,
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 2)
			if err != nil {
				return err
			}

			f, err := ddt.NewFilter(c.StringSlice("pos"), c.String("pattern"))
			if err != nil {
				return err
			}

			stats, err := ddt.FilterFile(a[0], a[1], f, logger(c, ui))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(ui.Out, "filter: kept %d senses, dropped %d, malformed %d\n", stats.Kept, stats.Dropped, stats.Malformed)
			return err
		},
	}
}
