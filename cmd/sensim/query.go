package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/ddt"
	"github.com/revelaction/sensim/query"
	"github.com/revelaction/sensim/render"
	"github.com/revelaction/sensim/similarity"
)

// Query command
func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "look up the similar senses of a sense interactively",
		ArgsUsage: "<ddt>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "k", Usage: "number of similar senses", Value: 10},
			&cli.BoolFlag{Name: "batch", Usage: "read one query per line from stdin, without prompt"},
			&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "no colors"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the rank of the similar senses"},
			&cli.StringFlag{Name: "format", Usage: "one of score, bar, id", Value: render.Defaultformat},
			taggedFlag, quietFlag,
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}

			l := logger(c, ui)
			tagged := c.Bool(taggedFlag.Name)

			clusters, err := ddt.ParseFile(a[0], l)
			if err != nil {
				return err
			}

			idx, err := similarity.IndexClusters(clusters, similarity.Options{Tagged: tagged})
			if err != nil {
				return err
			}
			l.Printf("Indexed %d senses", idx.Len())

			var r render.Renderer
			if c.Bool("json") {
				r = render.NewJSONRenderer(ui.Out)
			} else {
				tr := render.NewTextRenderer(ui.Out)
				tr.HasColor = !c.Bool("no-color")
				tr.HasPrefix = !c.Bool("no-prefix")
				tr.Format = c.String("format")
				r = tr
			}

			// now present the REPL
			h := query.NewHandler(idx, clusters, tagged, c.Int("k"), r)
			if c.Bool("batch") {
				return h.Batch(ui.In, ui.Err)
			}
			return h.Run()
		},
	}
}
