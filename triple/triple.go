// Package triple reads and writes similarity files. Each line is a directed
// similarity edge:
//
//	lemma#senseId\tlemma#senseId\tscore
package triple

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/sensim/sense"
)

// ErrFormat is returned for lines that are not a similarity triple.
var ErrFormat = errors.New("triple format error")

// Triple is a similarity edge from sense A to sense B.
type Triple struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// String returns the triple line, without line terminator.
func (t Triple) String() string {
	return t.A + "\t" + t.B + "\t" + sense.FormatWeight(t.Score)
}

// ParseLine parses a triple line. Columns after the third are ignored.
func ParseLine(line string) (Triple, error) {
	columns := strings.SplitN(line, "\t", 4)
	if len(columns) < 3 {
		return Triple{}, fmt.Errorf("%w: expected 3 columns, got %d", ErrFormat, len(columns))
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(columns[2]), 64)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: invalid score %q", ErrFormat, columns[2])
	}

	return Triple{A: columns[0], B: columns[1], Score: score}, nil
}
