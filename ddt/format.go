package ddt

import (
	"strconv"
	"strings"

	"github.com/revelaction/sensim/sense"
)

// Format writes the cluster as a DDT line, without line terminator.
// ParseLine(Format(c)) is equal to c for clusters with non negative
// relations and at least one cluster word with text, which holds for every
// cluster ParseLine returns. A cluster without words formats with an empty
// last column that ParseLine rejects.
func Format(c sense.Cluster) string {
	var b strings.Builder

	b.WriteString(c.Sense.Span.TaggedWord())
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(c.Sense.Id))
	b.WriteByte('\t')

	for i, cw := range c.Words {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(cw.Span.TaggedWord())
		if cw.HasRelation {
			b.WriteByte('#')
			b.WriteString(strconv.Itoa(cw.RelatedSenseId))
			b.WriteByte(':')
			b.WriteString(sense.FormatWeight(cw.Weight))
		}
	}

	return b.String()
}
