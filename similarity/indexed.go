package similarity

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/sensim/ddt"
	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/index"
	"github.com/revelaction/sensim/progress"
	"github.com/revelaction/sensim/sense"
	"github.com/revelaction/sensim/triple"
)

// BuildIndex indexes every sense of the DDT at path: the document is the
// sense identifier, the terms are the lemmas of its cluster words.
func BuildIndex(path string, opts Options) (*index.Index, error) {
	start := time.Now()
	logger := opts.logger()

	total, err := file.CountLines(path)
	if err != nil {
		return nil, err
	}

	sc, err := ddt.OpenScanner(path)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	rep := opts.reporter()
	rep.Start("Indexing", total)

	b := index.NewBuilder()
	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			logger.Printf("Unable to parse line %d: %v", sc.Line(), err)
			continue
		}

		if err := b.Add(c.Sense.Key(opts.Tagged), c.Terms(opts.Tagged)); err != nil {
			logger.Printf("Unable to index sense %s: %v", c.Sense.Key(opts.Tagged), err)
		}
		rep.Incr()
	}
	rep.Finish()

	if err := sc.Err(); err != nil {
		return nil, err
	}

	idx, err := b.Commit()
	if err != nil {
		return nil, err
	}

	if opts.MaxClauses > 0 {
		idx.MaxClauses = opts.MaxClauses
	}

	logger.Printf("Built index: %s senses, %s terms in %s, %s",
		humanize.Comma(int64(idx.Len())),
		humanize.Comma(int64(idx.Terms())),
		time.Since(start).Round(time.Millisecond),
		progress.Usage())

	return idx, nil
}

// IndexClusters indexes already parsed clusters, see BuildIndex.
func IndexClusters(clusters []sense.Cluster, opts Options) (*index.Index, error) {
	b := index.NewBuilder()
	for _, c := range clusters {
		if err := b.Add(c.Sense.Key(opts.Tagged), c.Terms(opts.Tagged)); err != nil {
			return nil, err
		}
	}

	idx, err := b.Commit()
	if err != nil {
		return nil, err
	}

	if opts.MaxClauses > 0 {
		idx.MaxClauses = opts.MaxClauses
	}
	return idx, nil
}

// ComputeIndexed writes, for every sense of the DDT at in, a triple to
// each of its k most similar other senses. The score is the index score,
// see index.Index.Search.
//
// The index is built sequentially, then the senses are queried
// concurrently by Options.Workers workers.
func ComputeIndexed(in string, k int, out string, opts Options) (Summary, error) {
	start := time.Now()
	logger := opts.logger()

	if k <= 0 {
		return Summary{}, fmt.Errorf("invalid k %d", k)
	}

	idx, err := BuildIndex(in, opts)
	if err != nil {
		return Summary{}, err
	}

	w, err := triple.Create(out)
	if err != nil {
		return Summary{}, err
	}

	summary, err := QueryIndex(idx, in, k, w, opts)
	if err != nil {
		w.Close()
		return summary, err
	}

	if err := w.Close(); err != nil {
		return summary, fmt.Errorf("IO error closing %s: %w", out, err)
	}

	summary.Elapsed = time.Since(start)
	logger.Printf("Indexed similarities done: %s", summary)
	return summary, nil
}

// QueryIndex streams the DDT at in and writes the top k neighbors of each
// sense to sink. A failing query is logged and counted, it does not stop
// the run. QueryIndex returns once every query has completed.
func QueryIndex(idx *index.Index, in string, k int, sink triple.Sink, opts Options) (Summary, error) {
	logger := opts.logger()
	rep := opts.reporter()

	var summary Summary

	total, err := file.CountLines(in)
	if err != nil {
		return summary, err
	}

	sc, err := ddt.OpenScanner(in)
	if err != nil {
		return summary, err
	}
	defer sc.Close()

	var failed, triples atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(opts.workers())

	rep.Start("Querying", total)

	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			logger.Printf("Unable to parse line %d: %v", sc.Line(), err)
			summary.Malformed++
			continue
		}

		summary.Senses++

		g.Go(func() error {
			defer rep.Incr()

			key := c.Sense.Key(opts.Tagged)
			defer func() {
				if r := recover(); r != nil {
					logger.Printf("Query for sense %s panicked: %v", key, r)
					failed.Add(1)
				}
			}()

			n, err := querySense(idx, c, k, sink, opts.Tagged)
			triples.Add(int64(n))
			if err != nil {
				logger.Printf("Query for sense %s failed: %v", key, err)
				failed.Add(1)
			}

			return nil
		})
	}

	// the sink must not be closed before all queries are done
	g.Wait()
	rep.Finish()

	summary.Failed = int(failed.Load())
	summary.Triples = int(triples.Load())

	if err := sc.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

// querySense writes the hits of the sense in a single batch, so a failed
// sense leaves no triples in the sink.
func querySense(idx *index.Index, c sense.Cluster, k int, sink triple.Sink, tagged bool) (int, error) {
	key := c.Sense.Key(tagged)

	hits, err := idx.Search(c.Terms(tagged), k, key)
	if err != nil {
		return 0, err
	}

	ts := make([]triple.Triple, len(hits))
	for i, h := range hits {
		ts[i] = triple.Triple{A: key, B: h.Id, Score: h.Score}
	}

	if err := sink.WriteAll(ts); err != nil {
		return 0, err
	}

	return len(ts), nil
}
