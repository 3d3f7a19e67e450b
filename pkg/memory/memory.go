package memory

import (
	"encoding/binary"
	"sync/atomic"
)

// Ptr is a byte address into a Memory. Address 0 is the null pointer.
type Ptr uint32

// Null is the zero address. The arena never returns it.
const Null Ptr = 0

// DefaultSize is the memory size used when none is given (1 MiB).
const DefaultSize = 1 << 20

// Memory is a flat, byte-addressed region shared by generated code and the prelude.
// Reads outside the region return 0 and writes outside it are dropped, so a
// runaway scan always terminates and a runaway copy never corrupts the host.
type Memory struct {
	data   []byte
	faults atomic.Int64
}

// New creates a zeroed memory of size bytes. A non-positive size selects DefaultSize.
func New(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	return &Memory{data: make([]byte, size)}
}

// Size returns the number of addressable bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Faults returns how many out-of-range accesses have been absorbed.
// The count is safe to update from concurrent primitives.
func (m *Memory) Faults() int {
	return int(m.faults.Load())
}

func (m *Memory) inRange(p Ptr) bool {
	return uint64(p) < uint64(len(m.data))
}

// ReadByte reads a single byte at p.
func (m *Memory) ReadByte(p Ptr) byte {
	if !m.inRange(p) {
		m.faults.Add(1)
		return 0
	}
	return m.data[p]
}

// WriteByte writes a single byte at p.
func (m *Memory) WriteByte(p Ptr, val byte) {
	if !m.inRange(p) {
		m.faults.Add(1)
		return
	}
	m.data[p] = val
}

// Read32 reads a little-endian 32-bit word at p.
func (m *Memory) Read32(p Ptr) uint32 {
	if m.inRange(p) && m.inRange(p+3) && p+3 > p {
		return binary.LittleEndian.Uint32(m.data[p : p+4])
	}
	var v uint32
	for i := Ptr(0); i < 4; i++ {
		v |= uint32(m.ReadByte(p+i)) << (8 * i)
	}
	return v
}

// Write32 writes a little-endian 32-bit word at p.
func (m *Memory) Write32(p Ptr, val uint32) {
	if m.inRange(p) && m.inRange(p+3) && p+3 > p {
		binary.LittleEndian.PutUint32(m.data[p:p+4], val)
		return
	}
	for i := Ptr(0); i < 4; i++ {
		m.WriteByte(p+i, byte(val>>(8*i)))
	}
}

// Window returns the in-range part of [p, p+n) as a slice aliasing the memory.
// Any part of the request beyond the end is counted as a fault.
func (m *Memory) Window(p Ptr, n int) []byte {
	if n <= 0 {
		return nil
	}
	if !m.inRange(p) {
		m.faults.Add(1)
		return nil
	}
	end := uint64(p) + uint64(n)
	if end > uint64(len(m.data)) {
		m.faults.Add(1)
		end = uint64(len(m.data))
	}
	return m.data[p:end]
}

// Load copies n bytes starting at p into a new slice. Bytes beyond the end read as 0.
func (m *Memory) Load(p Ptr, n int) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, m.Window(p, n))
	return out
}

// Store copies b into memory starting at p and returns how many bytes landed.
func (m *Memory) Store(p Ptr, b []byte) int {
	return copy(m.Window(p, len(b)), b)
}

// Move copies n bytes from src to dst with memmove semantics.
func (m *Memory) Move(dst, src Ptr, n int) {
	if n <= 0 {
		return
	}
	copy(m.Window(dst, n), m.Load(src, n))
}

// CStringLen counts the bytes before the first 0 at p. A string running off the
// end of memory stops there.
func (m *Memory) CStringLen(p Ptr) int {
	if !m.inRange(p) {
		m.faults.Add(1)
		return 0
	}
	n := 0
	for i := int(p); i < len(m.data); i++ {
		if m.data[i] == 0 {
			return n
		}
		n++
	}
	m.faults.Add(1)
	return n
}

// CString returns a copy of the null-terminated string at p, without the terminator.
func (m *Memory) CString(p Ptr) []byte {
	return m.Load(p, m.CStringLen(p))
}

// PutCString writes s followed by a terminator at p.
func (m *Memory) PutCString(p Ptr, s string) {
	m.Store(p, []byte(s))
	m.WriteByte(p+Ptr(len(s)), 0)
}
