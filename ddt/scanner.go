package ddt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/revelaction/sensim/file"
	"github.com/revelaction/sensim/sense"
)

const maxLineSize = 64 << 20

// Scanner iterates over the sense clusters of a DDT without keeping the
// file in memory. A line that can not be parsed does not stop the
// iteration: Cluster returns its error and the next Scan continues.
type Scanner struct {
	sc     *bufio.Scanner
	closer io.Closer

	line    int
	cluster sense.Cluster
	err     error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{sc: sc}
}

// OpenScanner opens the (possibly compressed) DDT at path. The caller must
// Close the Scanner.
func OpenScanner(path string) (*Scanner, error) {
	r, err := file.Open(path)
	if err != nil {
		return nil, err
	}

	s := NewScanner(r)
	s.closer = r
	return s, nil
}

// Scan advances to the next line. It returns false at the end of the input
// or on a read error, see Err.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}

	s.line++
	s.cluster, s.err = ParseLine(s.sc.Text())
	return true
}

// Cluster returns the cluster of the current line, or the format error of
// the line.
func (s *Scanner) Cluster() (sense.Cluster, error) {
	if s.err != nil {
		return sense.Cluster{}, s.err
	}
	return s.cluster, nil
}

// Text returns the raw current line.
func (s *Scanner) Text() string {
	return s.sc.Text()
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the read error that stopped the scanning, if any.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return fmt.Errorf("IO error after line %d: %w", s.line, err)
	}
	return nil
}

// Close closes the underlying file, if the Scanner opened it.
func (s *Scanner) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
