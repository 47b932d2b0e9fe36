package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics of a DDT",
		ArgsUsage: "<ddt>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
			&cli.BoolFlag{Name: "dist", Usage: "print the cluster size distribution"},
			taggedFlag,
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}

			hdl := stat.NewHandler(c.Bool(taggedFlag.Name))
			if err := hdl.AggregateFile(a[0]); err != nil {
				return err
			}

			stats := hdl.Get()
			if c.Bool("json") {
				return json.NewEncoder(ui.Out).Encode(stats)
			}

			fmt.Fprintf(ui.Out, "Total senses: %s\n", humanize.Comma(int64(stats.NumSenses)))
			fmt.Fprintf(ui.Out, "Unique sense words: %s\n", humanize.Comma(int64(stats.NumUniqueSenseWords)))
			fmt.Fprintf(ui.Out, "Total cluster words: %s\n", humanize.Comma(int64(stats.NumClusterWords)))
			fmt.Fprintf(ui.Out, "Unique cluster words: %s\n", humanize.Comma(int64(stats.NumUniqueClusterWords)))
			fmt.Fprintf(ui.Out, "Related cluster words: %s\n", humanize.Comma(int64(stats.NumRelatedWords)))
			fmt.Fprintf(ui.Out, "Average cluster size: %.2f\n", stats.ClusterSizeMean)
			fmt.Fprintf(ui.Out, "Malformed lines: %s\n", humanize.Comma(int64(stats.NumMalformed)))

			if !c.Bool("dist") {
				return nil
			}

			sizes := make([]int, 0, len(stats.ClusterSizeDis))
			for size := range stats.ClusterSizeDis {
				sizes = append(sizes, size)
			}
			sort.Ints(sizes)

			for _, size := range sizes {
				fmt.Fprintf(ui.Out, "%8d %s\n", size, humanize.Comma(int64(stats.ClusterSizeDis[size])))
			}

			return nil
		},
	}
}
