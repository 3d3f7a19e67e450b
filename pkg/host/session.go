// Package host wires a guest program to a memory, an arena and a prelude
// runtime over a pair of streams.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"goprelude/pkg/memory"
	"goprelude/pkg/prelude"
	"goprelude/pkg/programs"
)

// ErrProgramFault wraps a panic raised by a running program.
var ErrProgramFault = errors.New("program fault")

type options struct {
	memorySize int
}

// Option configures a Session.
type Option func(*options)

// WithMemorySize sets the guest memory size in bytes.
func WithMemorySize(n int) Option {
	return func(o *options) { o.memorySize = n }
}

// Session owns everything one program run needs.
type Session struct {
	Memory  *memory.Memory
	Arena   *memory.Arena
	Runtime *prelude.Runtime

	input io.Reader
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer, opts ...Option) *Session {
	o := options{memorySize: memory.DefaultSize}
	for _, opt := range opts {
		opt(&o)
	}
	mem := memory.New(o.memorySize)
	return &Session{
		Memory:  mem,
		Arena:   memory.NewArena(mem),
		Runtime: prelude.New(mem, in, out),
		input:   in,
	}
}

// cancelGrace is how long Run waits for a program to stop after its context
// ends before abandoning it.
const cancelGrace = 250 * time.Millisecond

// Run executes p and returns its exit code.
// When ctx ends first, a closable input is closed so a pending read returns,
// and ctx.Err() is reported. A program still blocked after cancelGrace (a read
// on a blocking file descriptor cannot be interrupted) is abandoned; the
// Session must not be reused after that.
func (s *Session) Run(ctx context.Context, p programs.Program) (int32, error) {
	if p.Main == nil {
		return 0, fmt.Errorf("run %q: program has no entry point", p.Name)
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	var code int32

	g.Go(func() (err error) {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = fmt.Errorf("%w: %s: %w", ErrProgramFault, p.Name, e)
				} else {
					err = fmt.Errorf("%w: %s: %v", ErrProgramFault, p.Name, r)
				}
			}
		}()
		code = p.Main(programs.NewCaller(s.Runtime, s.Arena))
		return nil
	})

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-gctx.Done():
			if c, ok := s.input.(io.Closer); ok {
				_ = c.Close()
			}
			return gctx.Err()
		}
	})

	waitc := make(chan error, 1)
	go func() { waitc <- g.Wait() }()

	select {
	case err := <-waitc:
		return code, err
	case <-ctx.Done():
	}

	timer := time.NewTimer(cancelGrace)
	defer timer.Stop()
	select {
	case err := <-waitc:
		return code, err
	case <-timer.C:
		return 0, ctx.Err()
	}
}

// Normalize prepares program output for comparison: CRLF becomes LF and
// trailing line breaks are dropped.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\r\n")
}
