package clifile

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gifnksm/clifile/internal/relock"
)

var errOutputGuardClosed = errors.New("clifile: use of closed output guard")

// Output is an output sink resolved from a command-line argument: either
// the process's standard output or an already-opened file.
//
// Like [Input], an Output is a plain value; every copy of a File-variant
// Output shares the single descriptor and line-buffered writer, so all
// copies observe one consistent stream position and buffer state.
//
// The zero value writes to standard output.
type Output struct {
	file *sharedWriter // nil means standard output
}

// sharedWriter is the singular resource behind all copies of a
// File-variant Output.
type sharedWriter struct {
	path string
	mu   relock.Mutex
	f    *os.File
	w    *lineWriter
}

var (
	_ io.Writer       = Output{}
	_ io.Writer       = (*LockedOutput)(nil)
	_ io.StringWriter = (*LockedOutput)(nil)
	_ io.ReaderFrom   = (*LockedOutput)(nil)
)

// Stdout returns an Output that writes to standard output.
func Stdout() Output { return Output{} }

// OpenOutput creates or truncates path for writing and returns a
// File-variant Output wrapping a line-buffered writer: buffered like
// ordinary output, but flushed whenever a newline is written so each
// line becomes visible to readers promptly. The open happens immediately,
// so an unwritable path fails at argument-resolution time.
//
// A failure is reported as the *fs.PathError from the operating system,
// unmodified.
func OpenOutput(path string) (Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return Output{}, err
	}

	return Output{file: &sharedWriter{
		path: path,
		f:    f,
		w:    newLineWriter(f),
	}}, nil
}

// ParseOutput interprets a command-line argument: the literal "-" selects
// standard output, anything else is a path passed to [OpenOutput].
func ParseOutput(s string) (Output, error) {
	if s == "-" {
		return Stdout(), nil
	}

	return OpenOutput(s)
}

// IsStdout reports whether the output writes to standard output.
func (out Output) IsStdout() bool { return out.file == nil }

// IsFile reports whether the output writes to an opened file.
func (out Output) IsFile() bool { return out.file != nil }

// Path returns the path the output was opened at.
// ok is false for the standard-output variant.
func (out Output) Path() (path string, ok bool) {
	if out.file == nil {
		return "", false
	}

	return out.file.path, true
}

// IsTerminal reports whether the output is standard output attached to a
// terminal. It is always false for the File variant.
func (out Output) IsTerminal() bool {
	if out.file != nil {
		return false
	}

	f, ok := stdoutTarget.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// Lock acquires exclusive access to the underlying stream and returns a
// write guard. It blocks while any other guard over the same stream is
// alive, including guards obtained through copies of this handle, and it
// never fails: state abandoned by a holder that failed mid-operation is
// recovered silently with the buffered data intact.
//
// Because only one guard can be alive at a time, writes performed through
// sequential lock/write/close cycles on copies of the same handle reach
// the file in lock-acquisition order.
func (out Output) Lock() *LockedOutput {
	if out.file == nil {
		std.outMu.Lock()

		return &LockedOutput{out: out, mu: &std.outMu, w: std.writer()}
	}

	out.file.mu.Lock()

	return &LockedOutput{out: out, mu: &out.file.mu, w: out.file.w}
}

// WithLock runs fn while holding the output lock and releases the lock
// when fn returns. If fn panics, the lock is released with a poison
// marker before the panic resumes; the next Lock discards the marker and
// proceeds over the intact buffer.
func (out Output) WithLock(fn func(*LockedOutput) error) error {
	g := out.Lock()

	defer func() {
		if p := recover(); p != nil {
			g.abandon()
			panic(p)
		}

		_ = g.Close()
	}()

	return fn(g)
}

// Write writes to the underlying stream, acquiring and releasing the
// lock around the single call. For a sequence of related writes, hold one
// guard via [Output.Lock] instead.
func (out Output) Write(p []byte) (int, error) {
	g := out.Lock()
	defer func() { _ = g.Close() }()

	return g.Write(p)
}

// Flush forces buffered bytes to the underlying stream, acquiring the
// lock for the duration of the call.
func (out Output) Flush() error {
	g := out.Lock()
	defer func() { _ = g.Close() }()

	return g.Flush()
}

// Close flushes buffered bytes and closes the shared descriptor. The
// descriptor is shared by every copy of the handle, so Close affects all
// of them. For the standard-output variant only the flush happens; the
// stream itself belongs to the process.
func (out Output) Close() error {
	if out.file == nil {
		std.outMu.Lock()
		defer std.outMu.Unlock()

		return std.writer().Flush()
	}

	st := out.file

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.w.Flush(); err != nil {
		_ = st.f.Close()

		return err
	}

	return st.f.Close()
}

// LockedOutput is the exclusive write guard obtained from [Output.Lock].
//
// It implements [io.Writer], [io.StringWriter], and [io.ReaderFrom].
// A guard must not outlive the Output it was derived from.
type LockedOutput struct {
	out Output
	mu  *relock.Mutex
	w   *lineWriter
}

// IsStdout reports whether the guard writes to standard output.
func (g *LockedOutput) IsStdout() bool { return g.out.IsStdout() }

// IsFile reports whether the guard writes to an opened file.
func (g *LockedOutput) IsFile() bool { return g.out.IsFile() }

// Path returns the path of the underlying file, if any.
func (g *LockedOutput) Path() (string, bool) { return g.out.Path() }

// Write implements io.Writer. Any newline in p triggers a flush through
// the last newline; trailing bytes stay buffered.
func (g *LockedOutput) Write(p []byte) (int, error) {
	if g.w == nil {
		return 0, errOutputGuardClosed
	}

	return g.w.Write(p)
}

// WriteString implements io.StringWriter.
func (g *LockedOutput) WriteString(s string) (int, error) {
	if g.w == nil {
		return 0, errOutputGuardClosed
	}

	return g.w.WriteString(s)
}

// WriteByte writes a single byte.
func (g *LockedOutput) WriteByte(c byte) error {
	if g.w == nil {
		return errOutputGuardClosed
	}

	return g.w.WriteByte(c)
}

// ReadFrom copies r to the output until EOF, implementing io.ReaderFrom.
func (g *LockedOutput) ReadFrom(r io.Reader) (int64, error) {
	if g.w == nil {
		return 0, errOutputGuardClosed
	}

	return io.Copy(g.w, r)
}

// Flush forces all buffered bytes to the underlying stream regardless of
// newline boundaries.
func (g *LockedOutput) Flush() error {
	if g.w == nil {
		return errOutputGuardClosed
	}

	return g.w.Flush()
}

// Close releases the lock. It is idempotent, and the guard is unusable
// afterwards. Close does not flush; buffered bytes without a trailing
// newline stay buffered for the next guard or for [Output.Close].
func (g *LockedOutput) Close() error {
	if g.w == nil {
		return nil
	}

	g.w = nil
	g.mu.Unlock()

	return nil
}

// abandon releases the lock on behalf of a failed holder, leaving the
// poison marker for the next acquirer to discard.
func (g *LockedOutput) abandon() {
	if g.w == nil {
		return
	}

	g.w = nil
	g.mu.Abandon()
}
