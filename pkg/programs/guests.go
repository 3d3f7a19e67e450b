package programs

import (
	"goprelude/pkg/abi"
	"goprelude/pkg/memory"
	"goprelude/pkg/prelude"
)

// maxRepeat bounds the counts array_repeat and int_table accept.
const maxRepeat = 4096

func absI32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func gcd(a, b int32) int32 {
	x, y := absI32(a), absI32(b)
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

func factorial(n int32) int32 {
	if n <= 1 {
		return 1
	}
	return n * factorial(n-1)
}

func gcdChain(c *Caller) int32 {
	first := c.Call("get_int").Int32()
	second := c.Call("get_int").Int32()
	third := c.Call("get_int").Int32()
	sum := gcd(first, second) + gcd(second, third)
	c.Call("println_int", i32(sum))
	return 0
}

func factorialSum(c *Caller) int32 {
	var total int32
	for i := int32(1); i <= 5; i++ {
		total += factorial(i)
	}
	c.Call("println_int", i32(total))
	return 0
}

func echoTokens(c *Caller) int32 {
	defer c.Frame()()

	n := c.Call("get_int").Int32()
	buf := c.Alloca(prelude.LineBufferSize)
	sep := c.Literal(" ")
	for i := int32(0); i < n; i++ {
		c.Call("get_str", ptr(buf))
		length := c.Call("strlen", ptr(buf))
		if length == 0 {
			break
		}
		c.Call("print_str", ptr(buf))
		c.Call("print_str", ptr(sep))
		c.Call("println_int", length)
	}
	return 0
}

// arrayRepeat lowers `[v; n]` the way the code generator does: store the first
// element, then memfill the tail from it.
func arrayRepeat(c *Caller) int32 {
	defer c.Frame()()

	n := c.Call("get_int").Int32()
	v := c.Call("get_int").Int32()
	if n <= 0 || n > maxRepeat {
		c.Call("println_str", ptr(c.Literal("bad length")))
		return 1
	}

	const elemSize = 4
	arr := c.Alloca(int(n) * elemSize)
	mem := c.Mem()
	mem.Write32(arr, uint32(v))
	if n > 1 {
		c.Call("memfill", ptr(arr+elemSize), ptr(arr), i32(elemSize), i32(n-1))
	}

	var sum int32
	for i := int32(0); i < n; i++ {
		sum += int32(mem.Read32(arr + memory.Ptr(i*elemSize)))
	}
	c.Call("println_int", i32(sum))
	return 0
}

func stringCopy(c *Caller) int32 {
	defer c.Frame()()

	buf := c.Alloca(prelude.LineBufferSize)
	c.Call("get_str", ptr(buf))
	n := c.Call("strlen", ptr(buf)).Int32()

	dup := c.Alloca(int(n) + 1)
	c.Call("strcpy", ptr(dup), ptr(buf))

	k := min(n, 3)
	prefix := c.Alloca(4)
	c.Call("memcpy_block", ptr(prefix), ptr(dup), i32(k))
	c.Mem().WriteByte(prefix+memory.Ptr(k), 0)

	c.Call("println_str", ptr(dup))
	c.Call("println_str", ptr(prefix))
	c.Call("println_int", i32(n))
	return 0
}

func intTable(c *Caller) int32 {
	defer c.Frame()()

	n := c.Call("get_int").Int32()
	if n > maxRepeat {
		c.Call("println_str", ptr(c.Literal("bad length")))
		return 1
	}
	out := c.Alloca(prelude.ItoaBufferSize)
	var total uint32
	for i := int32(1); i <= n; i++ {
		sq := i * i
		total += uint32(sq)
		c.Call("itoa", i32(sq), ptr(out))
		c.Call("println_str", ptr(out))
	}

	c.Call("utoa", abi.Word(total), ptr(out))
	c.Call("print_str", ptr(c.Literal("sum ")))
	c.Call("println_str", ptr(out))
	return 0
}
