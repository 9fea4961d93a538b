package migration

// reader.go provides the input readers used before rewriting:
//
//   - BOMReader: strips a leading UTF-8 BOM (0xEF 0xBB 0xBF) and remembers it
//   - CountingReader: tracks bytes read for the run statistics
//
// Use wrapInput to apply both in the correct order.

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMReader wraps an io.Reader and skips the UTF-8 BOM if present.
// Editors on Windows commonly add one, and it would otherwise stop the first
// line from matching.
type BOMReader struct {
	reader  *bufio.Reader
	checked bool
	hadBOM  bool
}

// NewBOMReader creates a new BOM-skipping reader.
func NewBOMReader(r io.Reader) *BOMReader {
	return &BOMReader{reader: bufio.NewReader(r)}
}

// Read implements io.Reader. The first call checks for and discards the BOM.
func (r *BOMReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		// A short input makes Peek fail, which simply means there is no BOM.
		if head, err := r.reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := r.reader.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
			r.hadBOM = true
		}
	}
	return r.reader.Read(p)
}

// HadBOM reports whether a BOM was skipped. Only meaningful after the first Read.
func (r *BOMReader) HadBOM() bool {
	return r.hadBOM
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// wrapInput counts raw bytes first so the BOM is included in the total.
func wrapInput(r io.Reader) (*BOMReader, *CountingReader) {
	counter := NewCountingReader(r)
	return NewBOMReader(counter), counter
}
