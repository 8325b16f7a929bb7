package clifile

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// lineWriter buffers writes the way bufio.Writer does, but additionally
// flushes whenever a written chunk carries a newline. Line-oriented output
// becomes visible to the reading side promptly while bulk output still
// benefits from buffering.
type lineWriter struct {
	bw *bufio.Writer
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{bw: bufio.NewWriter(w)}
}

// Write buffers p, flushing everything up to and including the last
// newline in p. Bytes after the last newline stay buffered.
func (lw *lineWriter) Write(p []byte) (int, error) {
	i := bytes.LastIndexByte(p, '\n')
	if i < 0 {
		return lw.bw.Write(p)
	}

	n, err := lw.bw.Write(p[:i+1])
	if err != nil {
		return n, err
	}

	if err := lw.bw.Flush(); err != nil {
		return n, err
	}

	m, err := lw.bw.Write(p[i+1:])

	return n + m, err
}

// WriteString is the string form of Write.
func (lw *lineWriter) WriteString(s string) (int, error) {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return lw.bw.WriteString(s)
	}

	n, err := lw.bw.WriteString(s[:i+1])
	if err != nil {
		return n, err
	}

	if err := lw.bw.Flush(); err != nil {
		return n, err
	}

	m, err := lw.bw.WriteString(s[i+1:])

	return n + m, err
}

// WriteByte buffers c, flushing if c is a newline.
func (lw *lineWriter) WriteByte(c byte) error {
	if err := lw.bw.WriteByte(c); err != nil {
		return err
	}

	if c == '\n' {
		return lw.bw.Flush()
	}

	return nil
}

// Flush forces all buffered bytes out regardless of newline boundaries.
func (lw *lineWriter) Flush() error {
	return lw.bw.Flush()
}
