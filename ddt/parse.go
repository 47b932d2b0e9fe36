// Package ddt parses and writes Disambiguated Distributional Thesaurus
// files. Each line of a DDT is a sense cluster:
//
//	<sense span>\t<sense id>\t<cluster word>, <cluster word>, ...
//
// where a span token is text[#pos] and a cluster word may end with
// #relatedSenseId:weight.
package ddt

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/sense"
)

// ErrFormat is returned for lines that do not follow the DDT grammar.
var ErrFormat = errors.New("DDT format error")

const minColumns = 3

var (
	clusterSep     = regexp.MustCompile(`,\s*`)
	relationSuffix = regexp.MustCompile(`^\d+:\d+\.\d+$`)
)

// ParseLine parses a DDT line into a sense cluster. Malformed lines return
// an error wrapping ErrFormat.
func ParseLine(line string) (sense.Cluster, error) {
	columns := strings.Split(line, "\t")

	// trailing empty columns do not count
	for len(columns) > 0 && columns[len(columns)-1] == "" {
		columns = columns[:len(columns)-1]
	}

	if len(columns) < minColumns {
		return sense.Cluster{}, fmt.Errorf("%w: expected %d columns, got %d", ErrFormat, minColumns, len(columns))
	}

	id, err := parseSenseId(columns[1])
	if err != nil {
		return sense.Cluster{}, err
	}

	words, err := parseClusterWords(columns[2])
	if err != nil {
		return sense.Cluster{}, err
	}

	return sense.Cluster{
		Sense: sense.Sense{Span: parseSenseSpan(columns[0]), Id: id},
		Words: words,
	}, nil
}

// Parse reads all the sense clusters of r. Lines that can not be parsed are
// logged and skipped. Only read errors are returned.
func Parse(r io.Reader, logger *log.Logger) ([]sense.Cluster, error) {
	logger = orDiscard(logger)

	clusters := make([]sense.Cluster, 0, 1024)
	sc := NewScanner(r)
	for sc.Scan() {
		if sc.Line()%1000 == 0 {
			logger.Printf("Parsing cluster %d", sc.Line())
		}

		c, err := sc.Cluster()
		if err != nil {
			logger.Printf("Unable to parse line %d: %v", sc.Line(), err)
			continue
		}

		clusters = append(clusters, c)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return clusters, nil
}

// ParseFile is Parse for a (possibly compressed) DDT file.
func ParseFile(path string, logger *log.Logger) ([]sense.Cluster, error) {
	r, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Parse(r, logger)
}

// parseSenseSpan splits each token on its last '#'.
func parseSenseSpan(column string) sense.Span {
	tokens := strings.Fields(column)
	span := make(sense.Span, 0, len(tokens))
	for _, token := range tokens {
		idx := strings.LastIndexByte(token, '#')
		if idx == -1 {
			span = append(span, sense.Word{Text: token})
			continue
		}

		span = append(span, sense.Word{Text: token[:idx], Pos: token[idx+1:], HasPos: true})
	}

	return span
}

// parseSenseId accepts integers and, for legacy files, floats which are
// truncated.
func parseSenseId(column string) (int, error) {
	id, err := strconv.Atoi(column)
	if err == nil {
		return id, nil
	}

	f, ferr := strconv.ParseFloat(column, 64)
	if ferr != nil || math.IsNaN(f) || f <= math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%w: invalid sense id %q", ErrFormat, column)
	}

	return int(f), nil
}

func parseClusterWords(column string) ([]sense.ClusterWord, error) {
	items := clusterSep.Split(column, -1)
	words := make([]sense.ClusterWord, 0, len(items))

	for _, item := range items {
		var cw sense.ClusterWord

		// multiwords are separated by whitespace
		tokens := strings.Fields(item)
		if len(tokens) == 0 {
			// trailing ", " or ", ,"
			continue
		}

		cw.Span = make(sense.Span, 0, len(tokens))
		for _, token := range tokens {
			sections := strings.Split(token, "#")
			word := sense.Word{Text: sections[0]}

			for _, section := range sections[1:] {
				if !relationSuffix.MatchString(section) {
					// the last non relation section is the POS
					word.Pos = section
					word.HasPos = true
					continue
				}

				id, weight, err := parseRelation(section)
				if err != nil {
					return nil, err
				}
				cw.RelatedSenseId = id
				cw.Weight = weight
				cw.HasRelation = true
			}

			cw.Span = append(cw.Span, word)
		}

		words = append(words, cw)
	}

	return words, nil
}

// parseRelation parses a "relatedSenseId:weight" section, already matched
// by relationSuffix.
func parseRelation(section string) (int, float64, error) {
	idStr, weightStr, _ := strings.Cut(section, ":")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid related sense id %q", ErrFormat, idStr)
	}

	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid weight %q", ErrFormat, weightStr)
	}

	return id, weight, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}
