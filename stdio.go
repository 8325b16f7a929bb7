package clifile

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/gifnksm/clifile/internal/relock"
)

// The standard streams are process-wide singular resources, so every
// Stream-variant handle in the process shares one buffered reader and one
// line-buffered writer, each behind its own lock. Buffered bytes survive
// across guards: a peek through one handle is visible to the next.
//
// The raw sources are variables so tests can substitute them before the
// buffers are first used.
var (
	stdinSource  io.Reader = os.Stdin
	stdoutTarget io.Writer = os.Stdout
)

type stdState struct {
	inOnce sync.Once
	inMu   relock.Mutex
	in     *bufio.Reader

	outOnce sync.Once
	outMu   relock.Mutex
	out     *lineWriter
}

var std = &stdState{}

// reader must be called with inMu held.
func (s *stdState) reader() *bufio.Reader {
	s.inOnce.Do(func() {
		s.in = bufio.NewReader(stdinSource)
	})

	return s.in
}

// writer must be called with outMu held.
func (s *stdState) writer() *lineWriter {
	s.outOnce.Do(func() {
		s.out = newLineWriter(stdoutTarget)
	})

	return s.out
}
