package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/similarity"
)

func exactCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "exact",
		Usage:     "write a similarity for every cluster word of every sense",
		ArgsUsage: "<ddt> <similarities>",
		Flags:     []cli.Flag{taggedFlag, everyFlag, barFlag, quietFlag},
		Action: func(c *cli.Context) error {
			return similarityAction(c, "exact", 0, ui)
		},
	}
}

func indexedCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "indexed",
		Usage:     "write the top k similar senses of every sense",
		ArgsUsage: "<ddt> <similarities>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "k",
				Usage:   "number of similar senses per sense",
				Value:   10,
				EnvVars: []string{"SENSIM_K"},
			},
			&cli.IntFlag{
				Name:  "max-clauses",
				Usage: "maximum number of distinct terms of a query",
			},
			taggedFlag, workersFlag, everyFlag, barFlag, quietFlag,
		},
		Action: func(c *cli.Context) error {
			return similarityAction(c, "indexed", c.Int("k"), ui)
		},
	}
}

func similarityAction(c *cli.Context, name string, k int, ui UI) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}

	l := logger(c, ui)
	opts := similarity.Options{
		Tagged:     c.Bool(taggedFlag.Name),
		Workers:    c.Int(workersFlag.Name),
		MaxClauses: c.Int("max-clauses"),
		Every:      c.Int(everyFlag.Name),
		Log:        l,
		Progress:   reporter(c, l),
	}

	s, err := similarity.NewStrategy(name, k, opts)
	if err != nil {
		return err
	}

	summary, err := s.Compute(a[0], a[1])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ui.Out, "%s: %s\n", s.Name(), summary)
	return err
}
