package sense

import (
	"strconv"
	"strings"
)

// Word is a single token of a span, with an optional POS tag.
type Word struct {
	Text string `json:"text"`

	// Pos is only meaningful if HasPos is set. A token like "word#" has an
	// empty, but present, POS tag.
	Pos    string `json:"pos,omitempty"`
	HasPos bool   `json:"-"`
}

// Tagged returns the word in the text#pos form, or the bare text if the
// word has no POS tag.
func (w Word) Tagged() string {
	if !w.HasPos {
		return w.Text
	}
	return w.Text + "#" + w.Pos
}

// Span is an ordered sequence of words, as found in the input.
type Span []Word

// FullWord returns the text of all words joined by a single space.
func (s Span) FullWord() string {
	switch len(s) {
	case 0:
		return ""
	case 1:
		return s[0].Text
	}

	texts := make([]string, len(s))
	for i, w := range s {
		texts[i] = w.Text
	}
	return strings.Join(texts, " ")
}

// TaggedWord returns all words in their text#pos form joined by a single
// space.
func (s Span) TaggedWord() string {
	tagged := make([]string, len(s))
	for i, w := range s {
		tagged[i] = w.Tagged()
	}
	return strings.Join(tagged, " ")
}

// Lemma returns the TaggedWord if tagged is true, the FullWord otherwise.
func (s Span) Lemma(tagged bool) string {
	if tagged {
		return s.TaggedWord()
	}
	return s.FullWord()
}

// Equal reports whether both spans have the same words in the same order.
func (s Span) Equal(o Span) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Sense is a disambiguated lemma. The Id is only unique among the senses of
// the same lemma.
type Sense struct {
	Span Span `json:"span"`
	Id   int  `json:"id"`
}

// Key returns the sense identifier lemma#id used in similarity files.
func (s Sense) Key(tagged bool) string {
	return JoinKey(s.Span.Lemma(tagged), s.Id)
}

func (s Sense) Equal(o Sense) bool {
	return s.Id == o.Id && s.Span.Equal(o.Span)
}

// ClusterWord is a feature of a sense cluster. It may point to a sense of
// its own lemma, with a weight.
type ClusterWord struct {
	Span Span `json:"span"`

	// RelatedSenseId and Weight are set together, see HasRelation.
	RelatedSenseId int     `json:"related,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	HasRelation    bool    `json:"-"`
}

// EffectiveWeight returns the weight of the cluster word, 1.0 for
// unweighted words.
func (cw ClusterWord) EffectiveWeight() float64 {
	if !cw.HasRelation {
		return 1.0
	}
	return cw.Weight
}

func (cw ClusterWord) Equal(o ClusterWord) bool {
	if cw.HasRelation != o.HasRelation {
		return false
	}

	if cw.HasRelation {
		if cw.RelatedSenseId != o.RelatedSenseId || cw.Weight != o.Weight {
			return false
		}
	}

	return cw.Span.Equal(o.Span)
}

// Cluster is a sense with its cluster words. It represents a line of a DDT.
type Cluster struct {
	Sense Sense         `json:"sense"`
	Words []ClusterWord `json:"words"`
}

// Equal compares the sense and all the cluster words, in order.
func (c Cluster) Equal(o Cluster) bool {
	if !c.Sense.Equal(o.Sense) {
		return false
	}

	if len(c.Words) != len(o.Words) {
		return false
	}

	for i := range c.Words {
		if !c.Words[i].Equal(o.Words[i]) {
			return false
		}
	}
	return true
}

// Terms returns the distinct lemmas of the cluster words, in order of first
// appearance.
func (c Cluster) Terms(tagged bool) []string {
	seen := make(map[string]bool, len(c.Words))
	terms := make([]string, 0, len(c.Words))
	for _, cw := range c.Words {
		lemma := cw.Span.Lemma(tagged)
		if seen[lemma] {
			continue
		}
		seen[lemma] = true
		terms = append(terms, lemma)
	}
	return terms
}

// JoinKey builds a sense identifier from a lemma and a sense id.
func JoinKey(lemma string, id int) string {
	return lemma + "#" + strconv.Itoa(id)
}

// FormatWeight formats a weight with the shortest representation that
// parses back to the same value, always keeping a decimal point: 1 is
// written "1.0".
func FormatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
