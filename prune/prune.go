// Package prune caps the outgoing similarity edges of each sense. The input
// must be sorted by the first column ascending, then by score descending,
// as produced by:
//
//	LC_ALL=C sort -t$'\t' -k1,1 -k3,3gr
package prune

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/triple"
)

// ErrUnsorted is returned when order verification finds a line out of
// order.
var ErrUnsorted = errors.New("similarities not sorted")

const binarized = "1.0"

// Options configure a Pruner.
type Options struct {
	// N is the maximum number of edges kept per sense.
	N int

	// Binarize rewrites the score of the kept edges to 1.0.
	Binarize bool

	// Threshold drops the edges whose score is Threshold times smaller
	// than the top score of the sense, or more. 0 disables it.
	Threshold float64

	// VerifyOrder aborts the pass with ErrUnsorted on unsorted input.
	VerifyOrder bool

	Log *log.Logger
}

// Summary counts the outcome of a pass.
type Summary struct {
	Records   int           `json:"records"`
	Senses    int           `json:"senses"`
	Kept      int           `json:"kept"`
	Pruned    int           `json:"pruned"`
	Malformed int           `json:"malformed"`
	Elapsed   time.Duration `json:"elapsed"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%s records of %s senses, kept %s, pruned %s, %s malformed in %s",
		humanize.Comma(int64(s.Records)),
		humanize.Comma(int64(s.Senses)),
		humanize.Comma(int64(s.Kept)),
		humanize.Comma(int64(s.Pruned)),
		humanize.Comma(int64(s.Malformed)),
		s.Elapsed.Round(time.Millisecond))
}

// Pruner is a single forward pass over sorted similarities. It keeps only
// the state of the current sense.
type Pruner struct {
	n           int
	binarize    bool
	threshold   float64
	verifyOrder bool
	logger      *log.Logger

	current   string
	kept      int
	top       float64
	lastScore float64
}

// New returns a Pruner. opts.N must be positive.
func New(opts Options) (*Pruner, error) {
	if opts.N <= 0 {
		return nil, fmt.Errorf("invalid number of edges per sense %d", opts.N)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = math.Inf(1)
	}

	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Pruner{
		n:           opts.N,
		binarize:    opts.Binarize,
		threshold:   threshold,
		verifyOrder: opts.VerifyOrder,
		logger:      logger,
	}, nil
}

// Run prunes the similarities of r and writes the kept lines to w.
func (p *Pruner) Run(r io.Reader, w io.Writer) (Summary, error) {
	start := time.Now()
	var summary Summary

	bw := bufio.NewWriter(w)
	tr := triple.NewReader(r)
	first := true

	for tr.Scan() {
		t, err := tr.Triple()
		if err != nil {
			p.logger.Printf("Unable to prune line %d: %v", tr.Line(), err)
			summary.Malformed++
			continue
		}
		summary.Records++

		if first || t.A != p.current {
			if p.verifyOrder && !first && t.A < p.current {
				return summary, fmt.Errorf("%w: line %d: sense %q after %q", ErrUnsorted, tr.Line(), t.A, p.current)
			}

			first = false
			p.current = t.A
			p.kept = 0
			p.top = t.Score
			summary.Senses++
		} else if p.verifyOrder && t.Score > p.lastScore {
			return summary, fmt.Errorf("%w: line %d: score %v of %q after %v", ErrUnsorted, tr.Line(), t.Score, t.A, p.lastScore)
		}
		p.lastScore = t.Score

		if !p.keep(t.Score) {
			summary.Pruned++
			continue
		}
		p.kept++
		summary.Kept++

		line := tr.Text()
		if p.binarize {
			line = t.A + "\t" + t.B + "\t" + binarized
		}

		if _, err := bw.WriteString(line + "\n"); err != nil {
			return summary, fmt.Errorf("IO error: %w", err)
		}
	}

	if err := tr.Err(); err != nil {
		return summary, err
	}

	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("IO error: %w", err)
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func (p *Pruner) keep(score float64) bool {
	return p.kept < p.n && p.top/score < p.threshold
}

// Prune prunes the (possibly compressed) similarity file in into out.
func Prune(in, out string, opts Options) (Summary, error) {
	p, err := New(opts)
	if err != nil {
		return Summary{}, err
	}

	r, err := file.Open(in)
	if err != nil {
		return Summary{}, err
	}
	defer r.Close()

	w, err := file.Create(out)
	if err != nil {
		return Summary{}, err
	}

	summary, err := p.Run(r, w)
	if err != nil {
		w.Close()
		return summary, err
	}

	if err := w.Close(); err != nil {
		return summary, fmt.Errorf("IO error closing %s: %w", out, err)
	}

	p.logger.Printf("Pruned %s: %s", in, summary)
	return summary, nil
}
