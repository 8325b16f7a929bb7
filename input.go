package clifile

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gifnksm/clifile/internal/relock"
)

var errInputGuardClosed = errors.New("clifile: use of closed input guard")

// Input is an input source resolved from a command-line argument: either
// the process's standard input or an already-opened file.
//
// An Input is a plain value. Copies are cheap and every copy of a
// File-variant Input shares the single underlying descriptor and buffer,
// so the type can live inside flag or options structs that duplicate
// their values while the OS resource stays singular. Copying never opens
// a new descriptor and never forks the stream position.
//
// The zero value reads from standard input.
type Input struct {
	file *sharedReader // nil means standard input
}

// sharedReader is the singular resource behind all copies of a
// File-variant Input.
type sharedReader struct {
	path string
	mu   relock.Mutex
	f    *os.File
	r    *bufio.Reader
}

var (
	_ io.Reader   = Input{}
	_ io.Reader   = (*LockedInput)(nil)
	_ io.WriterTo = (*LockedInput)(nil)
)

// Stdin returns an Input that reads from standard input.
func Stdin() Input { return Input{} }

// OpenInput opens path for reading and returns a File-variant Input
// wrapping a buffered reader over the descriptor. The open happens
// immediately, so a bad path fails at argument-resolution time rather
// than on first read.
//
// A failure is reported as the *fs.PathError from the operating system,
// unmodified.
func OpenInput(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, err
	}

	return Input{file: &sharedReader{
		path: path,
		f:    f,
		r:    bufio.NewReader(f),
	}}, nil
}

// ParseInput interprets a command-line argument: the literal "-" selects
// standard input, anything else is a path passed to [OpenInput].
func ParseInput(s string) (Input, error) {
	if s == "-" {
		return Stdin(), nil
	}

	return OpenInput(s)
}

// IsStdin reports whether the input reads from standard input.
func (in Input) IsStdin() bool { return in.file == nil }

// IsFile reports whether the input reads from an opened file.
func (in Input) IsFile() bool { return in.file != nil }

// Path returns the path the input was opened from.
// ok is false for the standard-input variant.
func (in Input) Path() (path string, ok bool) {
	if in.file == nil {
		return "", false
	}

	return in.file.path, true
}

// IsTerminal reports whether the input is standard input attached to a
// terminal. It is always false for the File variant, including files that
// happen to name a character device path.
func (in Input) IsTerminal() bool {
	if in.file != nil {
		return false
	}

	f, ok := stdinSource.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// Lock acquires exclusive access to the underlying stream and returns a
// read guard. It blocks while any other guard over the same stream is
// alive, including guards obtained through copies of this handle, and it
// never fails: state abandoned by a holder that failed mid-operation is
// recovered silently with the buffered data intact.
//
// Release the guard with [LockedInput.Close], typically via defer. Guards
// are meant to span one logical unit of reading, not to be retained.
func (in Input) Lock() *LockedInput {
	if in.file == nil {
		std.inMu.Lock()

		return &LockedInput{in: in, mu: &std.inMu, r: std.reader()}
	}

	in.file.mu.Lock()

	return &LockedInput{in: in, mu: &in.file.mu, r: in.file.r}
}

// WithLock runs fn while holding the input lock and releases the lock
// when fn returns. If fn panics, the lock is released with a poison
// marker before the panic resumes; the next Lock discards the marker and
// proceeds over the intact buffer.
func (in Input) WithLock(fn func(*LockedInput) error) error {
	g := in.Lock()

	defer func() {
		if p := recover(); p != nil {
			g.abandon()
			panic(p)
		}

		_ = g.Close()
	}()

	return fn(g)
}

// Read reads from the underlying stream, acquiring and releasing the
// lock around the single call. For a sequence of related reads, hold one
// guard via [Input.Lock] instead.
func (in Input) Read(p []byte) (int, error) {
	g := in.Lock()
	defer func() { _ = g.Close() }()

	return g.Read(p)
}

// Close closes the shared descriptor. The descriptor is shared by every
// copy of the handle, so Close affects all of them. Closing the
// standard-input variant is a no-op.
func (in Input) Close() error {
	if in.file == nil {
		return nil
	}

	in.file.mu.Lock()
	defer in.file.mu.Unlock()

	return in.file.f.Close()
}

// LockedInput is the exclusive read guard obtained from [Input.Lock].
//
// It implements [io.Reader] and [io.WriterTo] and exposes the buffered
// operations of the shared reader; read-exact and read-to-string compose
// from the standard library ([io.ReadFull], [io.ReadAll]) over the guard.
// A guard must not outlive the Input it was derived from.
type LockedInput struct {
	in Input
	mu *relock.Mutex
	r  *bufio.Reader
}

// IsStdin reports whether the guard reads from standard input.
func (g *LockedInput) IsStdin() bool { return g.in.IsStdin() }

// IsFile reports whether the guard reads from an opened file.
func (g *LockedInput) IsFile() bool { return g.in.IsFile() }

// Path returns the path of the underlying file, if any.
func (g *LockedInput) Path() (string, bool) { return g.in.Path() }

// Read implements io.Reader.
func (g *LockedInput) Read(p []byte) (int, error) {
	if g.r == nil {
		return 0, errInputGuardClosed
	}

	return g.r.Read(p)
}

// ReadByte reads and returns a single byte.
func (g *LockedInput) ReadByte() (byte, error) {
	if g.r == nil {
		return 0, errInputGuardClosed
	}

	return g.r.ReadByte()
}

// Peek returns the next n bytes without consuming them. The bytes stop
// being valid at the next read call.
func (g *LockedInput) Peek(n int) ([]byte, error) {
	if g.r == nil {
		return nil, errInputGuardClosed
	}

	return g.r.Peek(n)
}

// Discard skips the next n bytes, returning the number of bytes skipped.
func (g *LockedInput) Discard(n int) (int, error) {
	if g.r == nil {
		return 0, errInputGuardClosed
	}

	return g.r.Discard(n)
}

// ReadString reads until the first occurrence of delim, returning a
// string containing the data up to and including the delimiter, with the
// same contract as [bufio.Reader.ReadString].
func (g *LockedInput) ReadString(delim byte) (string, error) {
	if g.r == nil {
		return "", errInputGuardClosed
	}

	return g.r.ReadString(delim)
}

// WriteTo drains the remaining input into w, implementing io.WriterTo.
func (g *LockedInput) WriteTo(w io.Writer) (int64, error) {
	if g.r == nil {
		return 0, errInputGuardClosed
	}

	return g.r.WriteTo(w)
}

// Close releases the lock. It is idempotent, and the guard is unusable
// afterwards; the underlying descriptor stays open for the handle.
func (g *LockedInput) Close() error {
	if g.r == nil {
		return nil
	}

	g.r = nil
	g.mu.Unlock()

	return nil
}

// abandon releases the lock on behalf of a failed holder, leaving the
// poison marker for the next acquirer to discard.
func (g *LockedInput) abandon() {
	if g.r == nil {
		return
	}

	g.r = nil
	g.mu.Abandon()
}
