package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/prune"
)

func pruneCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "keep the first n similarities of every sense",
		Description: "The similarities must be sorted by sense, then by score descending:\n\n" +
			"   LC_ALL=C sort -t$'\\t' -k1,1 -k3,3gr",
		ArgsUsage: "<sorted similarities> <pruned similarities>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "n",
				Usage:    "similarities to keep per sense",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "binarize",
				Usage: "write 1.0 as score of every kept similarity",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "drop similarities `T` times smaller than the top one of the sense, 0 disables",
			},
			&cli.BoolFlag{
				Name:  "verify-order",
				Usage: "fail on unsorted input",
				Value: true,
			},
			quietFlag,
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 2)
			if err != nil {
				return err
			}

			summary, err := prune.Prune(a[0], a[1], prune.Options{
				N:           c.Int("n"),
				Binarize:    c.Bool("binarize"),
				Threshold:   c.Float64("threshold"),
				VerifyOrder: c.Bool("verify-order"),
				Log:         logger(c, ui),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(ui.Out, "prune: %s\n", summary)
			return err
		},
	}
}
