// Package programs holds small guest programs lowered by hand to prelude calls.
// They exercise the prelude exactly as compiled code does: every effect goes
// through an abi symbol with word arguments and arena-backed buffers.
package programs

import (
	"sort"
	"sync"
)

// Program is a lowered guest program. Main returns the process exit code.
type Program struct {
	Name        string
	Description string
	Main        func(c *Caller) int32
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Program)
)

// Register makes p available to hosts under p.Name.
func Register(p Program) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name] = p
}

// Lookup finds a registered program.
func Lookup(name string) (Program, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// All returns the registered programs sorted by name.
func All() []Program {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ps := make([]Program, 0, len(registry))
	for _, p := range registry {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	return ps
}

func init() {
	for _, p := range []Program{
		{Name: "gcd_chain", Description: "reads three integers, prints gcd(a,b)+gcd(b,c)", Main: gcdChain},
		{Name: "factorial_sum", Description: "prints 1!+2!+...+5!", Main: factorialSum},
		{Name: "echo_tokens", Description: "reads a count and that many tokens, prints each with its length", Main: echoTokens},
		{Name: "array_repeat", Description: "builds [v; n] with memfill and prints the element sum", Main: arrayRepeat},
		{Name: "string_copy", Description: "copies a token with strcpy and memcpy_block", Main: stringCopy},
		{Name: "int_table", Description: "reads n, prints the squares 1..n through itoa", Main: intTable},
	} {
		Register(p)
	}
}
