package prelude

import (
	"strconv"

	"goprelude/pkg/memory"
)

// Itoa writes the decimal form of v and a terminator at out.
// out must hold ItoaBufferSize bytes.
func (rt *Runtime) Itoa(v int32, out memory.Ptr) {
	var scratch [ItoaBufferSize]byte
	rt.storeDigits(strconv.AppendInt(scratch[:0], int64(v), 10), out)
}

// ItoaUnsigned writes the decimal form of v and a terminator at out.
// out must hold UitoaBufferSize bytes.
func (rt *Runtime) ItoaUnsigned(v uint32, out memory.Ptr) {
	var scratch [UitoaBufferSize]byte
	rt.storeDigits(strconv.AppendUint(scratch[:0], uint64(v), 10), out)
}

// ItoaN is Itoa bounded by out.Cap. Digits that do not fit are dropped from the end.
func (rt *Runtime) ItoaN(v int32, out Buffer) (truncated bool) {
	if out.Cap <= 0 {
		return true
	}
	var scratch [ItoaBufferSize]byte
	digits := strconv.AppendInt(scratch[:0], int64(v), 10)
	if int32(len(digits)) > out.Cap-1 {
		digits = digits[:out.Cap-1]
		truncated = true
	}
	rt.storeDigits(digits, out.Ptr)
	return truncated
}

func (rt *Runtime) storeDigits(digits []byte, out memory.Ptr) {
	rt.Mem.Store(out, digits)
	rt.Mem.WriteByte(out+memory.Ptr(len(digits)), 0)
}
