package triple

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/revelaction/sensim/file"
)

// Sink receives similarity triples. Implementations must be safe for
// concurrent use. WriteAll writes either all the triples or none of them.
type Sink interface {
	Write(t Triple) error
	WriteAll(ts []Triple) error
}

var _ Sink = (*Writer)(nil)

// Writer is a Sink writing triple lines. All writes go through a single
// lock, so lines of concurrent writers are never interleaved.
type Writer struct {
	mu     sync.Mutex
	bw     *bufio.Writer
	closer io.Closer
	count  int
}

// NewWriter returns a Writer on w. Close flushes it but does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Create creates the (possibly compressed) triple file at path.
func Create(path string) (*Writer, error) {
	wc, err := file.Create(path)
	if err != nil {
		return nil, err
	}

	w := NewWriter(wc)
	w.closer = wc
	return w, nil
}

func (w *Writer) Write(t Triple) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.bw.WriteString(t.String()); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	w.count++
	return nil
}

// WriteAll writes the triples as one block: lines of concurrent writers are
// never placed between them.
func (w *Writer) WriteAll(ts []Triple) error {
	if len(ts) == 0 {
		return nil
	}

	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.bw.WriteString(b.String()); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	w.count += len(ts)
	return nil
}

// Count returns the number of triples written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes the buffered lines and closes the file, if the Writer
// created it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.bw.Flush(); err != nil {
		if w.closer != nil {
			w.closer.Close()
		}
		return fmt.Errorf("IO error: %w", err)
	}

	if w.closer == nil {
		return nil
	}

	if err := w.closer.Close(); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}
