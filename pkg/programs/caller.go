package programs

import (
	"fmt"

	"goprelude/pkg/abi"
	"goprelude/pkg/memory"
	"goprelude/pkg/prelude"
)

// Caller is what a lowered program sees: primitive calls by symbol, word-sized
// arguments, and stack buffers carved out of the arena.
// Misuse (unknown primitive, wrong arity, stack overflow) panics, the same way a
// mis-linked native program would crash; the host turns the panic into an error.
type Caller struct {
	rt    *prelude.Runtime
	arena *memory.Arena
}

// NewCaller binds a caller to a runtime and the arena over the same memory.
func NewCaller(rt *prelude.Runtime, arena *memory.Arena) *Caller {
	return &Caller{rt: rt, arena: arena}
}

// Mem is the program's memory.
func (c *Caller) Mem() *memory.Memory {
	return c.rt.Mem
}

// Call invokes a primitive through the ABI table.
func (c *Caller) Call(name string, args ...abi.Word) abi.Word {
	ret, err := abi.Invoke(c.rt, name, args...)
	if err != nil {
		panic(fmt.Errorf("call %s: %w", name, err))
	}
	return ret
}

// Alloca reserves n bytes in the current frame.
func (c *Caller) Alloca(n int) memory.Ptr {
	p, err := c.arena.Alloc(n)
	if err != nil {
		panic(fmt.Errorf("alloca: %w", err))
	}
	return p
}

// Literal places a string constant in memory and returns its address.
func (c *Caller) Literal(s string) memory.Ptr {
	p := c.Alloca(len(s) + 1)
	c.rt.Mem.PutCString(p, s)
	return p
}

// Frame opens a stack frame; the returned func pops it.
//
//	defer c.Frame()()
func (c *Caller) Frame() func() {
	mark := c.arena.Mark()
	return func() { c.arena.Release(mark) }
}

func i32(v int32) abi.Word { return abi.FromInt32(v) }

func ptr(p memory.Ptr) abi.Word { return abi.FromPtr(p) }
