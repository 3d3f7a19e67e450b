package memory

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocation does not fit in the arena.
var ErrOutOfMemory = errors.New("arena exhausted")

// arenaBase keeps the first allocation away from the null address.
const arenaBase Ptr = 16

// Arena is a bump allocator over a Memory, playing the role of the generated
// program's stack: frames reserve buffers with Alloc and drop them with Release.
// It belongs to the caller side; the prelude itself never allocates.
type Arena struct {
	mem  *Memory
	next Ptr
}

// NewArena creates an arena that hands out addresses of mem.
func NewArena(mem *Memory) *Arena {
	return &Arena{mem: mem, next: arenaBase}
}

// Memory returns the backing memory.
func (a *Arena) Memory() *Memory {
	return a.mem
}

// Alloc reserves n zeroed bytes aligned to 8 and returns their address.
func (a *Arena) Alloc(n int) (Ptr, error) {
	if n < 0 {
		return Null, fmt.Errorf("alloc %d bytes: negative size", n)
	}
	size := uint64((n + 7) / 8 * 8)
	if size == 0 {
		size = 8
	}
	if uint64(a.next)+size > uint64(a.mem.Size()) {
		return Null, fmt.Errorf("alloc %d bytes at 0x%X: %w", n, a.next, ErrOutOfMemory)
	}
	p := a.next
	a.next += Ptr(size)
	clear(a.mem.data[p:a.next])
	return p, nil
}

// Mark returns the current top of the arena.
func (a *Arena) Mark() Ptr {
	return a.next
}

// Release drops every allocation made after mark.
func (a *Arena) Release(mark Ptr) {
	if mark < arenaBase {
		mark = arenaBase
	}
	if mark < a.next {
		a.next = mark
	}
}

// Used returns the number of bytes currently reserved.
func (a *Arena) Used() int {
	return int(a.next - arenaBase)
}
