package triple

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

func TestString(t *testing.T) {
	cases := []struct {
		triple   Triple
		expected string
	}{
		{Triple{"a#0", "b#1", 1}, "a#0\tb#1\t1.0"},
		{Triple{"a b#0", "c#2", 0.0667}, "a b#0\tc#2\t0.0667"},
		{Triple{"a#0", "b#1", 12.5}, "a#0\tb#1\t12.5"},
	}

	for _, c := range cases {
		if got := c.triple.String(); got != c.expected {
			t.Errorf("expected %q, got %q", c.expected, got)
		}
	}
}

func TestParseLine(t *testing.T) {
	tr, err := ParseLine("a#0\tb c#1\t0.5\textra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr != (Triple{"a#0", "b c#1", 0.5}) {
		t.Errorf("unexpected triple %+v", tr)
	}

	for _, line := range []string{"", "a#0\tb#1", "a#0\tb#1\tx"} {
		if _, err := ParseLine(line); !errors.Is(err, ErrFormat) {
			t.Errorf("%q: expected ErrFormat, got %v", line, err)
		}
	}
}

func TestWriterWriteAll(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write(Triple{"a#0", "b#0", 0.5}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteAll(nil); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteAll([]Triple{{"c#0", "d#1", 1}, {"c#0", "e#2", 0.25}}); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	expected := "a#0\tb#0\t0.5\nc#0\td#1\t1.0\nc#0\te#2\t0.25\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	if w.Count() != 3 {
		t.Errorf("expected 3 triples, got %d", w.Count())
	}
}

func TestWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Write(Triple{A: fmt.Sprintf("a#%d", i), B: fmt.Sprintf("b#%d", j), Score: 1})
			}
		}(i)
	}
	wg.Wait()

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if w.Count() != 800 {
		t.Errorf("expected 800 triples, got %d", w.Count())
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 800 {
		t.Fatalf("expected 800 lines, got %d", len(lines))
	}

	for _, line := range lines {
		if _, err := ParseLine(line); err != nil {
			t.Fatalf("interleaved line %q: %v", line, err)
		}
	}
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.csv.zst")

	w, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}

	written := []Triple{{"b#0", "a#0", 2}, {"a#0", "b#0", 0.25}}
	for _, tr := range written {
		if err := w.Write(tr); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var read []Triple
	for r.Scan() {
		tr, err := r.Triple()
		if err != nil {
			t.Fatalf("line %d: %v", r.Line(), err)
		}
		read = append(read, tr)
	}

	if err := r.Err(); err != nil {
		t.Fatal(err)
	}

	sort.Slice(read, func(i, j int) bool { return read[i].A < read[j].A })
	if len(read) != 2 || read[0] != written[1] || read[1] != written[0] {
		t.Errorf("unexpected triples %+v", read)
	}
}

func TestReaderMalformed(t *testing.T) {
	r := NewReader(strings.NewReader("a#0\tb#0\t1.0\nbad\na#0\tc#0\t0.5\n"))

	var good, bad int
	for r.Scan() {
		if _, err := r.Triple(); err != nil {
			bad++
			continue
		}
		good++
	}

	if good != 2 || bad != 1 {
		t.Errorf("expected 2 good and 1 bad line, got %d and %d", good, bad)
	}
}
