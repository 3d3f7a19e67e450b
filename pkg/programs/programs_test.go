package programs

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"goprelude/pkg/abi"
	"goprelude/pkg/memory"
	"goprelude/pkg/prelude"
)

func newCaller(input string) (*Caller, *memory.Arena, *bytes.Buffer) {
	mem := memory.New(32 * 1024)
	arena := memory.NewArena(mem)
	out := &bytes.Buffer{}
	return NewCaller(prelude.New(mem, strings.NewReader(input), out), arena), arena, out
}

func TestRegistry(t *testing.T) {
	names := []string{"array_repeat", "echo_tokens", "factorial_sum", "gcd_chain", "int_table", "string_copy"}
	all := All()
	if len(all) != len(names) {
		t.Fatalf("Expected %d programs, got %d", len(names), len(all))
	}
	for i, name := range names {
		if all[i].Name != name {
			t.Errorf("program %d: expected %s, got %s", i, name, all[i].Name)
		}
		if all[i].Description == "" {
			t.Errorf("%s has no description", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Errorf("Lookup of an unknown program succeeded")
	}
}

func TestFrameReleasesStack(t *testing.T) {
	c, arena, _ := newCaller("")
	before := arena.Used()
	func() {
		defer c.Frame()()
		c.Alloca(100)
		c.Literal("scratch")
		if arena.Used() <= before {
			t.Errorf("Expected the frame to grow the stack")
		}
	}()
	if arena.Used() != before {
		t.Errorf("Expected stack back at %d bytes, got %d", before, arena.Used())
	}
}

func TestLiteralIsTerminated(t *testing.T) {
	c, _, out := newCaller("")
	p := c.Literal("hi there")
	c.Call("println_str", ptr(p))
	if out.String() != "hi there\n" {
		t.Errorf("Expected %q, got %q", "hi there\n", out.String())
	}
}

func TestCallPanicsOnMisuse(t *testing.T) {
	c, _, _ := newCaller("")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, abi.ErrArity) {
			t.Errorf("Expected an ErrArity panic, got %v", r)
		}
	}()
	c.Call("strlen")
}

func TestGCD(t *testing.T) {
	tests := []struct{ a, b, want int32 }{
		{12, 18, 6},
		{18, 27, 9},
		{-4, 6, 2},
		{0, 5, 5},
		{7, 0, 7},
		{0, 0, 0},
	}
	for _, tc := range tests {
		if got := gcd(tc.a, tc.b); got != tc.want {
			t.Errorf("gcd(%d, %d): expected %d, got %d", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestArrayRepeatRejectsHugeCounts(t *testing.T) {
	c, arena, out := newCaller("100000 1")
	if code := arrayRepeat(c); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if out.String() != "bad length\n" {
		t.Errorf("Expected %q, got %q", "bad length\n", out.String())
	}
	if arena.Used() != 0 {
		t.Errorf("Expected the frame to be released, %d bytes still used", arena.Used())
	}
}

func TestIntTableRejectsHugeCounts(t *testing.T) {
	for _, input := range []string{"4097", "2147483647", "99999999999"} {
		c, arena, out := newCaller(input)
		if code := intTable(c); code != 1 {
			t.Errorf("%s: expected exit code 1, got %d", input, code)
		}
		if out.String() != "bad length\n" {
			t.Errorf("%s: expected %q, got %q", input, "bad length\n", out.String())
		}
		if arena.Used() != 0 {
			t.Errorf("%s: expected the frame to be released, %d bytes still used", input, arena.Used())
		}
	}
}
