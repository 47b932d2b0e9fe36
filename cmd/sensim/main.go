package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/sensim/progress"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "sensim: %v\n", err)
}

func run(args []string, ui UI) error {
	return newApp(ui).Run(args)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "sensim",
		Usage:                "sense similarities of a Disambiguated Distributional Thesaurus",
		HideVersion:          true,
		EnableBashCompletion: true,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		Commands: []*cli.Command{
			exactCommand(ui),
			indexedCommand(ui),
			pruneCommand(ui),
			filterCommand(ui),
			statCommand(ui),
			queryCommand(ui),
			versionCommand(ui),
		},
	}
}

// Flags shared by several commands
var (
	taggedFlag = &cli.BoolFlag{
		Name:    "tagged",
		Usage:   "use the text#pos form of the lemmas in sense identifiers and terms",
		EnvVars: []string{"SENSIM_TAGGED"},
	}

	everyFlag = &cli.IntFlag{
		Name:    "every",
		Usage:   "log progress every `N` senses",
		Value:   progress.DefaultEvery,
		EnvVars: []string{"SENSIM_EVERY"},
	}

	workersFlag = &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of concurrent queries",
		Value:   runtime.NumCPU(),
		EnvVars: []string{"SENSIM_WORKERS"},
	}

	barFlag = &cli.BoolFlag{
		Name:  "bar",
		Usage: "show a progress bar instead of progress log lines",
	}

	quietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "do not log",
	}
)

func logger(c *cli.Context, ui UI) *log.Logger {
	if c.Bool(quietFlag.Name) {
		return log.New(io.Discard, "", 0)
	}
	return log.New(ui.Err, "", log.LstdFlags)
}

func reporter(c *cli.Context, l *log.Logger) progress.Reporter {
	if c.Bool(barFlag.Name) {
		return progress.NewBar()
	}
	return progress.NewLog(l, c.Int(everyFlag.Name), true)
}

// args returns the n positional arguments of the command.
func args(c *cli.Context, n int) ([]string, error) {
	if c.Args().Len() != n {
		return nil, fmt.Errorf("%s: expected %d arguments %s, got %d", c.Command.Name, n, c.Command.ArgsUsage, c.Args().Len())
	}
	return c.Args().Slice(), nil
}
