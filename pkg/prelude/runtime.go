// Package prelude implements the primitive operations that generated programs
// link against: console input/output, byte-string helpers and integer formatting.
//
// Every primitive works on addresses into a memory.Memory owned by the caller.
// The raw primitives never fail observably; the bounded and error-returning
// variants (ReadToken, ScanInt, StrcpyN, ItoaN) are additions for callers that
// want to see truncation and parse failures.
package prelude

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"goprelude/pkg/memory"
)

const (
	// LineBufferSize is the capacity GetStr assumes for its destination, terminator included.
	LineBufferSize = 1024
	// MaxTokenLen is the longest token GetStr stores.
	MaxTokenLen = LineBufferSize - 1
	// ItoaBufferSize fits "-2147483648" plus the terminator.
	ItoaBufferSize = 12
	// UitoaBufferSize fits "4294967295" plus the terminator.
	UitoaBufferSize = 11
)

var (
	ErrEndOfInput   = errors.New("end of input")
	ErrMalformedInt = errors.New("malformed integer")
	ErrIntRange     = errors.New("integer out of int32 range")
)

// Buffer is a caller-owned region with an explicit capacity in bytes.
type Buffer struct {
	Ptr memory.Ptr
	Cap int32
}

// Runtime carries the memory and the two streams a program talks to.
// Each stream is guarded by its own lock, so one Runtime may be shared by
// goroutines and a blocked read does not hold up output.
type Runtime struct {
	Mem *memory.Memory

	// Input is read by GetInt and GetStr. If nil, os.Stdin is used.
	// It is wrapped in a buffered reader on first use, so it must not be
	// replaced after reading has started.
	Input io.Reader
	// Output receives everything the print primitives write. If nil, os.Stdout is used.
	Output io.Writer

	inMu  sync.Mutex
	outMu sync.Mutex
	in    *bufio.Reader
}

// New creates a runtime over mem with the given streams.
func New(mem *memory.Memory, in io.Reader, out io.Writer) *Runtime {
	return &Runtime{Mem: mem, Input: in, Output: out}
}

func (rt *Runtime) outputSink() io.Writer {
	if rt.Output != nil {
		return rt.Output
	}
	return os.Stdout
}

func (rt *Runtime) inputSource() *bufio.Reader {
	if rt.in == nil {
		src := rt.Input
		if src == nil {
			src = os.Stdin
		}
		if br, ok := src.(*bufio.Reader); ok {
			rt.in = br
		} else {
			rt.in = bufio.NewReaderSize(src, LineBufferSize)
		}
	}
	return rt.in
}

// write emits b in a single call. Stream errors are not reported to generated code.
func (rt *Runtime) write(b []byte) {
	rt.outMu.Lock()
	defer rt.outMu.Unlock()
	_, _ = rt.outputSink().Write(b)
}
