// Package similarity computes directed similarity triples between the
// senses of a DDT. Two strategies are available: Exact emits an edge for
// every cluster word of every sense, Indexed retrieves the top K most
// similar senses from an inverted index.
package similarity

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/revelaction/sensim/progress"
)

// Options are shared by both strategies. The zero value is usable.
type Options struct {
	// Tagged selects the text#pos form of the lemmas in the identifiers.
	Tagged bool

	// Workers is the number of concurrent queries of the Indexed
	// strategy. 0 means runtime.NumCPU().
	Workers int

	// MaxClauses limits the distinct terms of a query. 0 means
	// index.DefaultMaxClauses.
	MaxClauses int

	// Every is the number of senses between two progress lines of the
	// default reporter.
	Every int

	Log *log.Logger

	// Progress defaults to a progress.Log on Log.
	Progress progress.Reporter
}

func (o Options) logger() *log.Logger {
	if o.Log == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Log
}

func (o Options) reporter() progress.Reporter {
	if o.Progress == nil {
		return progress.NewLog(o.logger(), o.Every, false)
	}
	return o.Progress
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Summary counts the outcome of a run.
type Summary struct {
	// Senses is the number of parsed senses.
	Senses int `json:"senses"`

	// Malformed is the number of skipped DDT lines.
	Malformed int `json:"malformed"`

	// Failed is the number of senses whose query failed.
	Failed int `json:"failed"`

	// Dropped is the number of edges not written because their score was
	// not positive.
	Dropped int `json:"dropped"`

	Triples int           `json:"triples"`
	Elapsed time.Duration `json:"elapsed"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%s senses, %s triples, %s malformed lines, %s failed, %s dropped in %s",
		humanize.Comma(int64(s.Senses)),
		humanize.Comma(int64(s.Triples)),
		humanize.Comma(int64(s.Malformed)),
		humanize.Comma(int64(s.Failed)),
		humanize.Comma(int64(s.Dropped)),
		s.Elapsed.Round(time.Millisecond))
}

// Strategy computes the similarity triples of the DDT at in and writes them
// to out.
type Strategy interface {
	Name() string
	Compute(in, out string) (Summary, error)
}

var (
	_ Strategy = Exact{}
	_ Strategy = Indexed{}
)

// Exact is the all pairs strategy, see ComputeExact.
type Exact struct {
	Options Options
}

func (Exact) Name() string { return "exact" }

func (e Exact) Compute(in, out string) (Summary, error) {
	return ComputeExact(in, out, e.Options)
}

// Indexed is the top K strategy, see ComputeIndexed.
type Indexed struct {
	K       int
	Options Options
}

func (Indexed) Name() string { return "indexed" }

func (ix Indexed) Compute(in, out string) (Summary, error) {
	return ComputeIndexed(in, ix.K, out, ix.Options)
}

// NewStrategy returns the strategy for name, "exact" or "indexed". k is
// only used by the indexed strategy.
func NewStrategy(name string, k int, opts Options) (Strategy, error) {
	switch name {
	case "exact":
		return Exact{Options: opts}, nil
	case "indexed":
		if k <= 0 {
			return nil, fmt.Errorf("indexed strategy needs a positive k, got %d", k)
		}
		return Indexed{K: k, Options: opts}, nil
	}

	return nil, fmt.Errorf("unknown strategy %q", name)
}
