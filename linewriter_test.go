package clifile

import (
	"bytes"
	"testing"
)

func TestLineWriter_BuffersUntilNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lw := newLineWriter(&buf)

	if _, err := lw.Write([]byte("abc")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if got := buf.String(); got != "" {
		t.Errorf("target after partial line = %q, want empty", got)
	}

	if _, err := lw.Write([]byte("d\nef")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Flushed through the newline; the tail stays buffered.
	if got := buf.String(); got != "abcd\n" {
		t.Errorf("target after newline = %q, want %q", got, "abcd\n")
	}

	if err := lw.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if got := buf.String(); got != "abcd\nef" {
		t.Errorf("target after Flush = %q, want %q", got, "abcd\nef")
	}
}

func TestLineWriter_FlushesThroughLastNewlineOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lw := newLineWriter(&buf)

	n, err := lw.Write([]byte("one\ntwo\nthree"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if want := len("one\ntwo\nthree"); n != want {
		t.Errorf("Write returned %d, want %d", n, want)
	}

	if got := buf.String(); got != "one\ntwo\n" {
		t.Errorf("target = %q, want %q", got, "one\ntwo\n")
	}
}

func TestLineWriter_WriteString(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lw := newLineWriter(&buf)

	if _, err := lw.WriteString("hello\nwor"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if got := buf.String(); got != "hello\n" {
		t.Errorf("target = %q, want %q", got, "hello\n")
	}

	if _, err := lw.WriteString("ld\n"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if got := buf.String(); got != "hello\nworld\n" {
		t.Errorf("target = %q, want %q", got, "hello\nworld\n")
	}
}

func TestLineWriter_WriteByte(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lw := newLineWriter(&buf)

	if err := lw.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte failed: %v", err)
	}

	if got := buf.String(); got != "" {
		t.Errorf("target after non-newline byte = %q, want empty", got)
	}

	if err := lw.WriteByte('\n'); err != nil {
		t.Fatalf("WriteByte failed: %v", err)
	}

	if got := buf.String(); got != "x\n" {
		t.Errorf("target after newline byte = %q, want %q", got, "x\n")
	}
}
