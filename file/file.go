// Package file opens and creates the flat text files of the toolkit. The
// compression of a file is selected by its extension: ".gz" is gzip, ".zst"
// is zstd, anything else is read and written as is.
package file

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	ExtGzip = ".gz"
	ExtZstd = ".zst"
)

// Compression returns the compression extension of path, or "" for plain
// files.
func Compression(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtGzip:
		return ExtGzip
	case ExtZstd:
		return ExtZstd
	}
	return ""
}

// Open opens path for reading, decompressing it if needed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	switch Compression(path) {
	case ExtGzip:
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip error in %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil

	case ExtZstd:
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd error in %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	}

	return f, nil
}

// Create creates (or truncates) path for writing, compressing it if needed.
// Close must be called to flush all buffered data.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	bw := bufio.NewWriterSize(f, 1<<16)

	switch Compression(path) {
	case ExtGzip:
		zw := gzip.NewWriter(bw)
		return &writeCloser{Writer: zw, closers: []io.Closer{zw, flusher{bw}, f}}, nil

	case ExtZstd:
		zw, err := zstd.NewWriter(bw)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd error in %s: %w", path, err)
		}
		return &writeCloser{Writer: zw, closers: []io.Closer{zw, flusher{bw}, f}}, nil
	}

	return &writeCloser{Writer: bw, closers: []io.Closer{flusher{bw}, f}}, nil
}

// CountLines returns the number of lines of a (possibly compressed) file.
// A last line without a trailing newline is counted.
func CountLines(path string) (int, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	buf := make([]byte, 1<<16)
	count := 0
	var last byte = '\n'
	for {
		n, err := r.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return 0, fmt.Errorf("IO error: %w", err)
		}
	}

	if last != '\n' {
		count++
	}

	return count, nil
}

// readCloser closes all its closers in order, returning the first error.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	return closeAll(rc.closers)
}

type writeCloser struct {
	io.Writer
	closers []io.Closer
}

func (wc *writeCloser) Close() error {
	return closeAll(wc.closers)
}

type flusher struct {
	w *bufio.Writer
}

func (f flusher) Close() error {
	return f.w.Flush()
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
