package ddt

import (
	"fmt"
	"io"
	"log"
	"regexp"

	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/sense"
)

// DefaultWordPattern keeps words with at least one latin letter.
const DefaultWordPattern = `.*[a-zA-Z]+.*`

// Filter removes senses and cluster words by POS tag and by a pattern on
// the full word.
type Filter struct {
	// PosTags, if not empty, is the set of accepted POS tags. Every word of
	// a span must carry one of them.
	PosTags []string

	// Pattern, if not nil, must match the whole full word.
	Pattern *regexp.Regexp
}

// NewFilter returns a Filter for the given POS tags and pattern. An empty
// pattern disables the pattern check.
func NewFilter(posTags []string, pattern string) (*Filter, error) {
	f := &Filter{PosTags: posTags}
	if pattern == "" {
		return f, nil
	}

	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid word pattern %q: %w", pattern, err)
	}
	f.Pattern = re
	return f, nil
}

// Keep returns the cluster without the rejected cluster words. ok is false
// if the sense itself is rejected or no cluster word is left.
func (f *Filter) Keep(c sense.Cluster) (sense.Cluster, bool) {
	if !f.accept(c.Sense.Span) {
		return c, false
	}

	words := make([]sense.ClusterWord, 0, len(c.Words))
	for _, cw := range c.Words {
		if f.accept(cw.Span) {
			words = append(words, cw)
		}
	}

	if len(words) == 0 {
		return c, false
	}

	c.Words = words
	return c, true
}

func (f *Filter) accept(span sense.Span) bool {
	if len(f.PosTags) > 0 {
		for _, w := range span {
			if !w.HasPos || !f.hasTag(w.Pos) {
				return false
			}
		}
	}

	if f.Pattern != nil && !f.Pattern.MatchString(span.FullWord()) {
		return false
	}

	return true
}

func (f *Filter) hasTag(pos string) bool {
	for _, t := range f.PosTags {
		if t == pos {
			return true
		}
	}
	return false
}

// FilterStats counts the outcome of a filter run.
type FilterStats struct {
	Kept      int
	Dropped   int
	Malformed int
}

// FilterFile streams the DDT at in through f and writes the kept clusters
// to out.
func FilterFile(in, out string, f *Filter, logger *log.Logger) (FilterStats, error) {
	logger = orDiscard(logger)
	var stats FilterStats

	sc, err := OpenScanner(in)
	if err != nil {
		return stats, err
	}
	defer sc.Close()

	w, err := file.Create(out)
	if err != nil {
		return stats, err
	}

	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			logger.Printf("Unable to parse line %d: %v", sc.Line(), err)
			stats.Malformed++
			continue
		}

		kept, ok := f.Keep(c)
		if !ok {
			stats.Dropped++
			continue
		}

		if _, err := io.WriteString(w, Format(kept)+"\n"); err != nil {
			w.Close()
			return stats, fmt.Errorf("IO error writing %s: %w", out, err)
		}
		stats.Kept++
	}

	if err := sc.Err(); err != nil {
		w.Close()
		return stats, err
	}

	if err := w.Close(); err != nil {
		return stats, fmt.Errorf("IO error closing %s: %w", out, err)
	}

	logger.Printf("Filtered %s: kept %d senses, dropped %d, malformed %d", in, stats.Kept, stats.Dropped, stats.Malformed)
	return stats, nil
}
