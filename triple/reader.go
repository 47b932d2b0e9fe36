package triple

import (
	"bufio"
	"fmt"
	"io"

	"github.com/revelaction/sensim/file"
)

// Reader iterates over the triples of a similarity file. Like ddt.Scanner,
// a malformed line does not stop the iteration.
type Reader struct {
	sc     *bufio.Scanner
	closer io.Closer

	line   int
	triple Triple
	err    error
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Reader{sc: sc}
}

// Open opens the (possibly compressed) triple file at path. The caller must
// Close the Reader.
func Open(path string) (*Reader, error) {
	r, err := file.Open(path)
	if err != nil {
		return nil, err
	}

	tr := NewReader(r)
	tr.closer = r
	return tr, nil
}

// Scan advances to the next line.
func (r *Reader) Scan() bool {
	if !r.sc.Scan() {
		return false
	}

	r.line++
	r.triple, r.err = ParseLine(r.sc.Text())
	return true
}

// Triple returns the triple of the current line, or its format error.
func (r *Reader) Triple() (Triple, error) {
	if r.err != nil {
		return Triple{}, r.err
	}
	return r.triple, nil
}

// Text returns the raw current line.
func (r *Reader) Text() string {
	return r.sc.Text()
}

// Line returns the 1-based number of the current line.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the read error that stopped the iteration, if any.
func (r *Reader) Err() error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("IO error after line %d: %w", r.line, err)
	}
	return nil
}

// Close closes the underlying file, if the Reader opened it.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
