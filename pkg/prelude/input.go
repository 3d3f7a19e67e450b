package prelude

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"goprelude/pkg/memory"
)

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrEndOfInput
	}
	return fmt.Errorf("%w: %w", ErrEndOfInput, err)
}

// skipSpace consumes whitespace and leaves the first other byte pending.
func skipSpace(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return endOfInput(err)
		}
		if !isSpace(b) {
			return r.UnreadByte()
		}
	}
}

// GetInt blocks until a decimal integer can be read and returns it.
// Malformed input and end of stream yield 0; the offending byte stays pending.
// Values outside the int32 range saturate.
func (rt *Runtime) GetInt() int32 {
	v, err := rt.ScanInt()
	if err != nil && !errors.Is(err, ErrIntRange) {
		return 0
	}
	return v
}

// ScanInt reads an optionally signed decimal integer after any leading whitespace.
// On ErrIntRange the saturated value is returned alongside the error.
func (rt *Runtime) ScanInt() (int32, error) {
	rt.inMu.Lock()
	defer rt.inMu.Unlock()

	r := rt.inputSource()
	if err := skipSpace(r); err != nil {
		return 0, err
	}

	neg := false
	if b, err := r.ReadByte(); err == nil {
		switch b {
		case '-':
			neg = true
		case '+':
		default:
			_ = r.UnreadByte()
		}
	}

	var acc int64
	digits := 0
	overflow := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		if !isDigit(b) {
			_ = r.UnreadByte()
			break
		}
		digits++
		if !overflow {
			acc = acc*10 + int64(b-'0')
			if acc > math.MaxInt32+1 {
				overflow = true
			}
		}
	}

	if digits == 0 {
		if _, err := r.Peek(1); err != nil {
			return 0, endOfInput(err)
		}
		return 0, ErrMalformedInt
	}
	if neg {
		acc = -acc
	}
	switch {
	case overflow && neg, acc < math.MinInt32:
		return math.MinInt32, fmt.Errorf("%w: %d digits", ErrIntRange, digits)
	case overflow, acc > math.MaxInt32:
		return math.MaxInt32, fmt.Errorf("%w: %d digits", ErrIntRange, digits)
	}
	return int32(acc), nil
}

// GetStr blocks until a whitespace-delimited token is available and stores it at
// buf with a terminator. buf must hold LineBufferSize bytes. At most MaxTokenLen
// bytes are stored; the rest of a longer token stays pending for the next read.
// The whitespace ending the token is not consumed. If the stream ends before any
// token, the empty string is stored.
func (rt *Runtime) GetStr(buf memory.Ptr) {
	_, _, _ = rt.ReadToken(Buffer{Ptr: buf, Cap: LineBufferSize})
}

// ReadToken is GetStr bounded by buf.Cap (and by MaxTokenLen). It reports the
// stored length and whether the token was cut short.
func (rt *Runtime) ReadToken(buf Buffer) (n int32, truncated bool, err error) {
	rt.inMu.Lock()
	defer rt.inMu.Unlock()

	if buf.Cap <= 0 {
		return 0, false, fmt.Errorf("read token: buffer capacity %d", buf.Cap)
	}
	limit := buf.Cap - 1
	if limit > MaxTokenLen {
		limit = MaxTokenLen
	}

	r := rt.inputSource()
	if err := skipSpace(r); err != nil {
		rt.Mem.WriteByte(buf.Ptr, 0)
		return 0, false, err
	}

	token := make([]byte, 0, 64)
	for int32(len(token)) < limit {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		if isSpace(b) {
			_ = r.UnreadByte()
			break
		}
		token = append(token, b)
	}
	if int32(len(token)) == limit {
		if next, err := r.Peek(1); err == nil && !isSpace(next[0]) {
			truncated = true
		}
	}

	rt.Mem.Store(buf.Ptr, token)
	rt.Mem.WriteByte(buf.Ptr+memory.Ptr(len(token)), 0)
	return int32(len(token)), truncated, nil
}
