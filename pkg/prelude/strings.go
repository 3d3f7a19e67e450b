package prelude

import (
	"math"

	"goprelude/pkg/memory"
)

// Strlen returns the number of bytes before the terminator of the string at s.
func (rt *Runtime) Strlen(s memory.Ptr) int32 {
	return int32(rt.Mem.CStringLen(s))
}

// Strcpy copies the string at src, terminator included, to dest.
// dest must hold Strlen(src)+1 bytes; nothing checks that.
func (rt *Runtime) Strcpy(dest, src memory.Ptr) {
	n := rt.Mem.CStringLen(src)
	rt.Mem.Move(dest, src, n+1)
}

// StrcpyN copies the string at src into dest, stopping at dest.Cap-1 bytes.
// The copy is always terminated when dest.Cap > 0.
func (rt *Runtime) StrcpyN(dest Buffer, src memory.Ptr) (truncated bool) {
	n := int32(rt.Mem.CStringLen(src))
	if dest.Cap <= 0 {
		return true
	}
	k := min(n, dest.Cap-1)
	rt.Mem.Move(dest.Ptr, src, int(k))
	rt.Mem.WriteByte(dest.Ptr+memory.Ptr(k), 0)
	return k < n
}

// Memfill writes elementCount copies of the elementSize-byte pattern at src into dest.
// It is a raw byte replicator and ignores terminators. The pattern is read once,
// before the first write.
func (rt *Runtime) Memfill(dest, src memory.Ptr, elementSize, elementCount int32) {
	if elementSize <= 0 || elementCount <= 0 {
		return
	}
	pattern := rt.Mem.Load(src, int(elementSize))
	for i := int64(0); i < int64(elementCount); i++ {
		off := uint64(dest) + uint64(i)*uint64(elementSize)
		if off > math.MaxUint32 {
			return
		}
		rt.Mem.Store(memory.Ptr(off), pattern)
	}
}

// MemcpyBlock copies exactly n bytes from src to dest.
func (rt *Runtime) MemcpyBlock(dest, src memory.Ptr, n int32) {
	rt.Mem.Move(dest, src, int(n))
}
