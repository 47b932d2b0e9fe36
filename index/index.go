// Package index is an in-memory inverted index of sense clusters. Documents
// are sense identifiers, terms are the un-analyzed lemmas of their cluster
// words, matched exactly.
//
// A Builder is filled sequentially and committed once. The committed Index
// is immutable and safe for concurrent searches.
package index

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// DefaultMaxClauses is the maximum number of distinct terms of a query.
const DefaultMaxClauses = 1000000

var (
	// ErrCommitted is returned by a Builder that was already committed.
	ErrCommitted = errors.New("index already committed")

	// ErrTooManyClauses is returned for queries with more distinct terms
	// than the MaxClauses of the Index.
	ErrTooManyClauses = errors.New("too many clauses")
)

// Builder accumulates documents. It is not safe for concurrent use.
type Builder struct {
	ids       []string
	postings  map[string][]int32
	committed bool
}

func NewBuilder() *Builder {
	return &Builder{postings: make(map[string][]int32)}
}

// Add indexes a document. Repeated terms count once.
func (b *Builder) Add(id string, terms []string) error {
	if b.committed {
		return ErrCommitted
	}

	if len(b.ids) == math.MaxInt32 {
		return fmt.Errorf("index full: %d documents", len(b.ids))
	}

	doc := int32(len(b.ids))
	b.ids = append(b.ids, id)

	for _, term := range terms {
		p := b.postings[term]
		// documents are added in order, a repeated term is at the tail
		if len(p) > 0 && p[len(p)-1] == doc {
			continue
		}
		b.postings[term] = append(p, doc)
	}

	return nil
}

// Len returns the number of documents added so far.
func (b *Builder) Len() int {
	return len(b.ids)
}

// Commit returns the Index of all added documents. The Builder can not be
// used afterwards.
func (b *Builder) Commit() (*Index, error) {
	if b.committed {
		return nil, ErrCommitted
	}
	b.committed = true

	idx := &Index{ids: b.ids, postings: b.postings, MaxClauses: DefaultMaxClauses}
	b.ids = nil
	b.postings = nil
	return idx, nil
}

// Index is a committed, read only inverted index.
type Index struct {
	ids      []string
	postings map[string][]int32

	// MaxClauses limits the distinct terms of a query. It must not be
	// changed while searches are running.
	MaxClauses int
}

// Hit is a document matching a query.
type Hit struct {
	Id    string  `json:"id"`
	Score float64 `json:"score"`
}

// Len returns the number of documents.
func (idx *Index) Len() int {
	return len(idx.ids)
}

// Terms returns the number of distinct terms.
func (idx *Index) Terms() int {
	return len(idx.postings)
}

// DocFreq returns the number of documents containing term.
func (idx *Index) DocFreq(term string) int {
	return len(idx.postings[term])
}

// Idf returns the inverse document frequency of term:
//
//	ln(1 + (N - df + 0.5) / (df + 0.5))
func (idx *Index) Idf(term string) float64 {
	n := float64(len(idx.ids))
	df := float64(len(idx.postings[term]))
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

// Search returns the top k documents sharing at least one term with the
// query, best first. The score of a document is the sum of the Idf of the
// shared terms; equal scores are ordered by identifier. Documents with the
// exclude identifier are skipped before selecting the top k.
func (idx *Index) Search(terms []string, k int, exclude string) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	distinct := slices.Clone(terms)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	limit := idx.MaxClauses
	if limit <= 0 {
		limit = DefaultMaxClauses
	}

	if len(distinct) > limit {
		return nil, fmt.Errorf("%w: %d distinct terms, max %d", ErrTooManyClauses, len(distinct), limit)
	}

	// sorted terms keep the float sums reproducible
	scores := make(map[int32]float64)
	for _, t := range distinct {
		p := idx.postings[t]
		if len(p) == 0 {
			continue
		}

		idf := idx.Idf(t)
		for _, doc := range p {
			scores[doc] += idf
		}
	}

	top := make(hits, 0, k)
	for doc, score := range scores {
		id := idx.ids[doc]
		if id == exclude {
			continue
		}
		top = top.InsertSorted(Hit{Id: id, Score: score}, k)
	}

	return top, nil
}

// hits is kept ordered by score descending, then identifier ascending.
type hits []Hit

func (h hits) InsertSorted(n Hit, k int) hits {
	for i := range len(h) {
		if before(n, h[i]) {
			h = append(h[:i+1], h[i:]...)
			h[i] = n
			if len(h) > k {
				h = h[:k]
			}
			return h
		}
	}

	if len(h) < k {
		h = append(h, n)
	}
	return h
}

func before(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Id < b.Id
}
