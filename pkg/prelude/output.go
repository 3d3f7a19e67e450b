package prelude

import (
	"strconv"

	"goprelude/pkg/memory"
)

// PrintInt writes the decimal form of v with no separator.
func (rt *Runtime) PrintInt(v int32) {
	var scratch [ItoaBufferSize]byte
	rt.write(strconv.AppendInt(scratch[:0], int64(v), 10))
}

// PrintlnInt writes the decimal form of v followed by a newline.
func (rt *Runtime) PrintlnInt(v int32) {
	var scratch [ItoaBufferSize]byte
	b := strconv.AppendInt(scratch[:0], int64(v), 10)
	rt.write(append(b, '\n'))
}

// PrintStr writes the bytes of the string at s, excluding the terminator.
func (rt *Runtime) PrintStr(s memory.Ptr) {
	rt.write(rt.Mem.CString(s))
}

// PrintlnStr writes the string at s followed by a newline.
func (rt *Runtime) PrintlnStr(s memory.Ptr) {
	rt.write(append(rt.Mem.CString(s), '\n'))
}
