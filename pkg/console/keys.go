package console

import (
	"io"
	"sync"
	"unicode/utf8"
)

// KeyBuffer queues typed keys and hands them out as a line-buffered stream,
// like a terminal in cooked mode: nothing is readable until Enter, and
// Backspace edits the pending line. Typed keys are echoed to Echo if set.
type KeyBuffer struct {
	Echo io.Writer

	mu     sync.Mutex
	cond   *sync.Cond
	line   []byte
	ready  []byte
	closed bool
}

// NewKeyBuffer creates an empty key buffer echoing to echo (may be nil).
func NewKeyBuffer(echo io.Writer) *KeyBuffer {
	k := &KeyBuffer{Echo: echo}
	k.cond = sync.NewCond(&k.mu)
	return k
}

// PushKey adds one key. '\n' or '\r' commits the line, '\b' deletes the last
// pending byte; other runes are stored UTF-8 encoded.
func (k *KeyBuffer) PushKey(r rune) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return
	}

	switch r {
	case '\n', '\r':
		k.line = append(k.line, '\n')
		k.ready = append(k.ready, k.line...)
		k.line = k.line[:0]
		k.echo([]byte{'\n'})
		k.cond.Broadcast()
	case '\b':
		if len(k.line) == 0 {
			return
		}
		_, size := utf8.DecodeLastRune(k.line)
		k.line = k.line[:len(k.line)-size]
		k.echo([]byte{'\b'})
	default:
		enc := utf8.AppendRune(nil, r)
		k.line = append(k.line, enc...)
		k.echo(enc)
	}
}

func (k *KeyBuffer) echo(b []byte) {
	if k.Echo != nil {
		_, _ = k.Echo.Write(b)
	}
}

// Pending returns the uncommitted line.
func (k *KeyBuffer) Pending() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.line)
}

// Read blocks until a committed line is available or the buffer is closed.
func (k *KeyBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	for len(k.ready) == 0 && !k.closed {
		k.cond.Wait()
	}
	if len(k.ready) == 0 {
		return 0, io.EOF
	}
	n := copy(p, k.ready)
	k.ready = k.ready[n:]
	return n, nil
}

// Close commits any pending line and makes Read return io.EOF once drained.
func (k *KeyBuffer) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.ready = append(k.ready, k.line...)
	k.line = nil
	k.closed = true
	k.cond.Broadcast()
	return nil
}
