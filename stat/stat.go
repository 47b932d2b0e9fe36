package stat

import (
	"github.com/revelaction/sensim/ddt"
	"github.com/revelaction/sensim/sense"
)

type Handler struct {
	stats Stats

	tagged       bool
	senseWords   map[string]struct{}
	clusterWords map[string]struct{}
}

type Stats struct {
	NumSenses             int         `json:"senses"`
	NumUniqueSenseWords   int         `json:"unique_sense_words"`
	NumClusterWords       int         `json:"cluster_words"`
	NumUniqueClusterWords int         `json:"unique_cluster_words"`
	NumRelatedWords       int         `json:"related_cluster_words"`
	NumMalformed          int         `json:"malformed"`
	ClusterSizeMean       float64     `json:"cluster_size_mean"`
	ClusterSizeDis        map[int]int `json:"cluster_size_distribution"`
}

func (h *Handler) Get() Stats {
	return h.stats
}

// NewHandler returns an empty Handler. Words are compared by their full
// word, or by their text#pos form if tagged is set.
func NewHandler(tagged bool) *Handler {
	stats := Stats{ClusterSizeDis: map[int]int{}}
	return &Handler{
		stats:        stats,
		tagged:       tagged,
		senseWords:   map[string]struct{}{},
		clusterWords: map[string]struct{}{},
	}
}

func (h *Handler) Aggregate(c sense.Cluster) {
	h.stats.NumSenses++
	h.senseWords[c.Sense.Span.Lemma(h.tagged)] = struct{}{}
	h.stats.NumUniqueSenseWords = len(h.senseWords)

	h.stats.NumClusterWords += len(c.Words)
	h.stats.ClusterSizeDis[len(c.Words)]++
	for _, cw := range c.Words {
		h.clusterWords[cw.Span.Lemma(h.tagged)] = struct{}{}
		if cw.HasRelation {
			h.stats.NumRelatedWords++
		}
	}
	h.stats.NumUniqueClusterWords = len(h.clusterWords)

	h.stats.ClusterSizeMean = float64(h.stats.NumClusterWords) / float64(h.stats.NumSenses)
}

// AggregateFile aggregates all the clusters of the DDT at path. Malformed
// lines are counted.
func (h *Handler) AggregateFile(path string) error {
	sc, err := ddt.OpenScanner(path)
	if err != nil {
		return err
	}
	defer sc.Close()

	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			h.stats.NumMalformed++
			continue
		}
		h.Aggregate(c)
	}

	return sc.Err()
}
