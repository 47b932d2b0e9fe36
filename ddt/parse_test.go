package ddt

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/revelaction/sensim/sense"
)

func tagged(text, pos string) sense.Word {
	return sense.Word{Text: text, Pos: pos, HasPos: true}
}

func plain(text string) sense.Word {
	return sense.Word{Text: text}
}

func related(span sense.Span, id int, weight float64) sense.ClusterWord {
	return sense.ClusterWord{Span: span, RelatedSenseId: id, Weight: weight, HasRelation: true}
}

func TestParseLineTooFewColumns(t *testing.T) {
	for _, line := range []string{"", "word#NN", "word#NN\t1", "word#NN\t1\t", "no tabs at all"} {
		_, err := ParseLine(line)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%q: expected ErrFormat, got %v", line, err)
		}
	}
}

func TestParseLineWeightedClusterWord(t *testing.T) {
	c, err := ParseLine("Root#NP\t0\tWord#POS#1:0.796")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Words) != 1 {
		t.Fatalf("expected 1 cluster word, got %d", len(c.Words))
	}

	cw := c.Words[0]
	if cw.Span.FullWord() != "Word" {
		t.Errorf("expected text Word, got %q", cw.Span.FullWord())
	}
	if !cw.Span[0].HasPos || cw.Span[0].Pos != "POS" {
		t.Errorf("expected pos POS, got %+v", cw.Span[0])
	}
	if !cw.HasRelation || cw.RelatedSenseId != 1 || cw.Weight != 0.796 {
		t.Errorf("expected relation 1:0.796, got %+v", cw)
	}
}

func TestParseLineMultiwordSense(t *testing.T) {
	c, err := ParseLine("wordA#PA wordB#PB\t3\tx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := sense.Span{tagged("wordA", "PA"), tagged("wordB", "PB")}
	if !c.Sense.Span.Equal(expected) {
		t.Errorf("expected span %+v, got %+v", expected, c.Sense.Span)
	}

	if c.Sense.Span.FullWord() != "wordA wordB" {
		t.Errorf("expected full word %q, got %q", "wordA wordB", c.Sense.Span.FullWord())
	}

	if c.Sense.Id != 3 {
		t.Errorf("expected sense id 3, got %d", c.Sense.Id)
	}
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected sense.Cluster
	}{
		{
			name: "single word no weights",
			line: "word#POSTAG\t1\tword2#POSTAG2, word3#POSTAG3",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{tagged("word", "POSTAG")}, Id: 1},
				Words: []sense.ClusterWord{
					{Span: sense.Span{tagged("word2", "POSTAG2")}},
					{Span: sense.Span{tagged("word3", "POSTAG3")}},
				},
			},
		},
		{
			name: "single word with weights",
			line: "word#POSTAG\t1\tword2#POSTAG2#1:1.000,word3#POSTAG3#2:0.0667",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{tagged("word", "POSTAG")}, Id: 1},
				Words: []sense.ClusterWord{
					related(sense.Span{tagged("word2", "POSTAG2")}, 1, 1.0),
					related(sense.Span{tagged("word3", "POSTAG3")}, 2, 0.0667),
				},
			},
		},
		{
			name: "multiword with pos",
			line: "wordA#POSTAGa wordB#POSTAGb wordC#POSTAGc\t0\tword1#POSTAG1 word2#POSTAG2#1:1.000,word3#POSTAG3#2:0.0667",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{tagged("wordA", "POSTAGa"), tagged("wordB", "POSTAGb"), tagged("wordC", "POSTAGc")}},
				Words: []sense.ClusterWord{
					related(sense.Span{tagged("word1", "POSTAG1"), tagged("word2", "POSTAG2")}, 1, 1.0),
					related(sense.Span{tagged("word3", "POSTAG3")}, 2, 0.0667),
				},
			},
		},
		{
			name: "multiword without pos",
			line: "wordA wordB wordC\t0\tword1 word2#1:1.000,word3#2:0.0667",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("wordA"), plain("wordB"), plain("wordC")}},
				Words: []sense.ClusterWord{
					related(sense.Span{plain("word1"), plain("word2")}, 1, 1.0),
					related(sense.Span{plain("word3")}, 2, 0.0667),
				},
			},
		},
		{
			name: "legacy float sense id",
			line: "word\t2.0\tother",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("word")}, Id: 2},
				Words: []sense.ClusterWord{{Span: sense.Span{plain("other")}}},
			},
		},
		{
			name: "sense pos split on last hash",
			line: "C##NP\t0\tx#1:0.5",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{tagged("C#", "NP")}},
				Words: []sense.ClusterWord{related(sense.Span{plain("x")}, 1, 0.5)},
			},
		},
		{
			name: "last pos section wins",
			line: "w\t0\tx#A#B#3:0.25",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("w")}},
				Words: []sense.ClusterWord{related(sense.Span{tagged("x", "B")}, 3, 0.25)},
			},
		},
		{
			name: "relation without decimals is a pos tag",
			line: "w\t0\tx#3:1",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("w")}},
				Words: []sense.ClusterWord{{Span: sense.Span{tagged("x", "3:1")}}},
			},
		},
		{
			name: "trailing separator",
			line: "bank\t0\triver, ",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("bank")}},
				Words: []sense.ClusterWord{{Span: sense.Span{plain("river")}}},
			},
		},
		{
			name: "empty items",
			line: "bank\t0\triver, , money, ",
			expected: sense.Cluster{
				Sense: sense.Sense{Span: sense.Span{plain("bank")}},
				Words: []sense.ClusterWord{
					{Span: sense.Span{plain("river")}},
					{Span: sense.Span{plain("money")}},
				},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseLine(c.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Equal(c.expected) {
				t.Errorf("expected %+v, got %+v", c.expected, got)
			}
		})
	}
}

func TestParseLineInvalidSenseId(t *testing.T) {
	for _, id := range []string{"abc", "NaN", "Inf", "-Inf", "1e300", "-1e300", "1e400"} {
		_, err := ParseLine("word\t" + id + "\tother")
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%q: expected ErrFormat, got %v", id, err)
		}
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"a#NN\t0\tb#NN#1:0.5",
		"broken line",
		"c#NN\tx\td",
		"c#NN\t1\td#NN",
	}, "\n")

	var logBuf bytes.Buffer
	clusters, err := Parse(strings.NewReader(input), log.New(&logBuf, "", 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	if clusters[0].Sense.Key(false) != "a#0" || clusters[1].Sense.Key(false) != "c#1" {
		t.Errorf("unexpected senses %s, %s", clusters[0].Sense.Key(false), clusters[1].Sense.Key(false))
	}

	if !strings.Contains(logBuf.String(), "line 2") || !strings.Contains(logBuf.String(), "line 3") {
		t.Errorf("expected malformed lines to be logged, got %q", logBuf.String())
	}
}

func TestScannerYieldsErrorsWithoutStopping(t *testing.T) {
	input := "a\t0\tb\nbad\nc\t1\td\n"

	sc := NewScanner(strings.NewReader(input))
	var keys []string
	var bad []int
	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			bad = append(bad, sc.Line())
			continue
		}
		keys = append(keys, c.Sense.Key(false))
	}

	if err := sc.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Join(keys, ",") != "a#0,c#1" {
		t.Errorf("unexpected keys %v", keys)
	}

	if len(bad) != 1 || bad[0] != 2 {
		t.Errorf("expected line 2 to be malformed, got %v", bad)
	}
}

func TestScannerAgreesWithParse(t *testing.T) {
	input := "a#NN\t0\tb#NN#1:0.5, c#JJ\nx y#NP\t2\tz#NP#0:1.0\n"

	all, err := Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatal(err)
	}

	sc := NewScanner(strings.NewReader(input))
	i := 0
	for sc.Scan() {
		c, err := sc.Cluster()
		if err != nil {
			t.Fatalf("line %d: %v", sc.Line(), err)
		}
		if !c.Equal(all[i]) {
			t.Errorf("line %d: scanner and parse disagree: %+v vs %+v", sc.Line(), c, all[i])
		}
		i++
	}

	if i != len(all) {
		t.Errorf("expected %d clusters, scanned %d", len(all), i)
	}
}
