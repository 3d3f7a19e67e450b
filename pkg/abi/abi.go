// Package abi describes the prelude as a flat table of C-callable procedures
// and dispatches calls that arrive as machine words.
package abi

import (
	"errors"
	"fmt"
	"sync"

	"goprelude/pkg/memory"
	"goprelude/pkg/prelude"
)

// SymbolPrefix is prepended to every primitive name in the linked program.
const SymbolPrefix = "__c_"

var (
	ErrUnknownPrimitive = errors.New("unknown primitive")
	ErrArity            = errors.New("argument count mismatch")
)

// Kind is the type of a parameter or result at the call boundary.
type Kind uint8

const (
	Void Kind = iota
	I32
	U32
	Ptr
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case Ptr:
		return "ptr"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Param is one positional parameter.
type Param struct {
	Name string
	Kind Kind
	// ReadOnly marks pointer parameters the primitive only reads.
	ReadOnly bool
}

// Signature is the calling contract of one primitive.
type Signature struct {
	Name   string
	Params []Param
	Result Kind
	Doc    string
}

// Symbol returns the link-time name of the primitive.
func (s Signature) Symbol() string {
	return SymbolPrefix + s.Name
}

// Word is one argument or result slot. I32 values travel as their two's-complement bits.
type Word uint32

// Int32 reinterprets w as a signed integer.
func (w Word) Int32() int32 { return int32(w) }

// Ptr reinterprets w as an address.
func (w Word) Ptr() memory.Ptr { return memory.Ptr(w) }

// FromInt32 packs a signed integer.
func FromInt32(v int32) Word { return Word(uint32(v)) }

// FromPtr packs an address.
func FromPtr(p memory.Ptr) Word { return Word(p) }

// Func is the Go side of a primitive. args has exactly len(Signature.Params) words.
type Func func(rt *prelude.Runtime, args []Word) Word

type binding struct {
	sig Signature
	fn  Func
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*binding)
	bySymbol   = make(map[string]string)
	order      []string
)

// Register adds a primitive or replaces the binding of an existing one.
func Register(sig Signature, fn Func) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[sig.Name]; !ok {
		order = append(order, sig.Name)
	}
	registry[sig.Name] = &binding{sig: sig, fn: fn}
	bySymbol[sig.Symbol()] = sig.Name
}

func lookup(name string) (*binding, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if b, ok := registry[name]; ok {
		return b, true
	}
	if n, ok := bySymbol[name]; ok {
		return registry[n], true
	}
	return nil, false
}

// Lookup finds a primitive by plain name ("print_int") or symbol ("__c_print_int").
func Lookup(name string) (Signature, bool) {
	b, ok := lookup(name)
	if !ok {
		return Signature{}, false
	}
	return b.sig, true
}

// Signatures returns every registered primitive in registration order.
func Signatures() []Signature {
	registryMu.RLock()
	defer registryMu.RUnlock()
	sigs := make([]Signature, 0, len(order))
	for _, name := range order {
		sigs = append(sigs, registry[name].sig)
	}
	return sigs
}

// Invoke calls the named primitive. Void primitives return 0.
func Invoke(rt *prelude.Runtime, name string, args ...Word) (Word, error) {
	b, ok := lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}
	if len(args) != len(b.sig.Params) {
		return 0, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, b.sig.Name, len(b.sig.Params), len(args))
	}
	return b.fn(rt, args), nil
}
