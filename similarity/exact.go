package similarity

import (
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/revelaction/sensim/ddt"
	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/sense"
	"github.com/revelaction/sensim/triple"
)

// unresolved is the candidate list of a lemma that has no sense in the
// corpus.
var unresolved = []int{0}

// LemmaIndex maps each lemma of the corpus to the ids of its senses, in
// input order.
type LemmaIndex map[string][]int

// Candidates returns the sense ids of lemma. A lemma without senses
// resolves to the single id 0.
func (li LemmaIndex) Candidates(lemma string) []int {
	if ids, ok := li[lemma]; ok {
		return ids
	}
	return unresolved
}

// BuildLemmaIndex reads the whole DDT at path once and indexes its senses
// by lemma.
func BuildLemmaIndex(path string, tagged bool, logger *log.Logger) (LemmaIndex, error) {
	start := time.Now()

	sc, err := ddt.OpenScanner(path)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	li := LemmaIndex{}
	senses := 0
	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			// reported by the similarity pass
			continue
		}

		lemma := c.Sense.Span.Lemma(tagged)
		li[lemma] = append(li[lemma], c.Sense.Id)
		senses++
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Printf("Built lemma index: %s lemmas, %s senses in %s",
			humanize.Comma(int64(len(li))), humanize.Comma(int64(senses)), time.Since(start).Round(time.Millisecond))
	}

	return li, nil
}

// ComputeExact writes a triple for every cluster word of every sense of
// the DDT at in. A cluster word with a related sense id points to that
// sense. Otherwise it points to every sense of its lemma, with weight 1.0
// if it has no weight.
//
// The lemma index is built in a first pass over in, the triples are
// written in a second one.
func ComputeExact(in, out string, opts Options) (Summary, error) {
	start := time.Now()
	logger := opts.logger()

	total, err := file.CountLines(in)
	if err != nil {
		return Summary{}, err
	}

	li, err := BuildLemmaIndex(in, opts.Tagged, logger)
	if err != nil {
		return Summary{}, err
	}

	w, err := triple.Create(out)
	if err != nil {
		return Summary{}, err
	}

	summary, err := WriteExact(in, total, li, w, opts)
	if err != nil {
		w.Close()
		return summary, err
	}

	if err := w.Close(); err != nil {
		return summary, fmt.Errorf("IO error closing %s: %w", out, err)
	}

	summary.Elapsed = time.Since(start)
	logger.Printf("Exact similarities done: %s", summary)
	return summary, nil
}

// WriteExact streams the DDT at in and writes its exact triples to sink.
// total is only used for progress.
func WriteExact(in string, total int, li LemmaIndex, sink triple.Sink, opts Options) (Summary, error) {
	logger := opts.logger()
	rep := opts.reporter()

	var summary Summary

	sc, err := ddt.OpenScanner(in)
	if err != nil {
		return summary, err
	}
	defer sc.Close()

	rep.Start("Exact similarities", total)
	defer rep.Finish()

	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			logger.Printf("Unable to parse line %d: %v", sc.Line(), err)
			summary.Malformed++
			continue
		}

		summary.Senses++
		rep.Incr()

		if err := writeCluster(c, li, sink, opts.Tagged, &summary); err != nil {
			return summary, err
		}
	}

	if err := sc.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

func writeCluster(c sense.Cluster, li LemmaIndex, sink triple.Sink, tagged bool, summary *Summary) error {
	a := c.Sense.Key(tagged)

	for _, cw := range c.Words {
		score := cw.EffectiveWeight()
		lemma := cw.Span.Lemma(tagged)

		var ids []int
		if cw.HasRelation {
			ids = []int{cw.RelatedSenseId}
		} else {
			ids = li.Candidates(lemma)
		}

		for _, id := range ids {
			if score <= 0 {
				summary.Dropped++
				continue
			}

			if err := sink.Write(triple.Triple{A: a, B: sense.JoinKey(lemma, id), Score: score}); err != nil {
				return err
			}
			summary.Triples++
		}
	}

	return nil
}
