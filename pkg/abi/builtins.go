package abi

import "goprelude/pkg/prelude"

func init() {
	for _, b := range builtins {
		Register(b.sig, b.fn)
	}
}

var builtins = []binding{
	{
		sig: Signature{Name: "print_int", Params: []Param{{Name: "value", Kind: I32}}, Doc: "writes decimal digits to stdout"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.PrintInt(a[0].Int32())
			return 0
		},
	},
	{
		sig: Signature{Name: "println_int", Params: []Param{{Name: "value", Kind: I32}}, Doc: "print_int followed by a newline"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.PrintlnInt(a[0].Int32())
			return 0
		},
	},
	{
		sig: Signature{Name: "print_str", Params: []Param{{Name: "str", Kind: Ptr, ReadOnly: true}}, Doc: "writes the string bytes, no terminator"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.PrintStr(a[0].Ptr())
			return 0
		},
	},
	{
		sig: Signature{Name: "println_str", Params: []Param{{Name: "str", Kind: Ptr, ReadOnly: true}}, Doc: "print_str followed by a newline"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.PrintlnStr(a[0].Ptr())
			return 0
		},
	},
	{
		sig: Signature{Name: "get_int", Result: I32, Doc: "blocking read of a decimal integer"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			return FromInt32(rt.GetInt())
		},
	},
	{
		sig: Signature{Name: "get_str", Params: []Param{{Name: "buffer", Kind: Ptr}}, Doc: "blocking read of one whitespace-delimited token into a 1024-byte buffer"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.GetStr(a[0].Ptr())
			return 0
		},
	},
	{
		sig: Signature{Name: "strlen", Params: []Param{{Name: "str", Kind: Ptr, ReadOnly: true}}, Result: I32, Doc: "byte count before the terminator"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			return FromInt32(rt.Strlen(a[0].Ptr()))
		},
	},
	{
		sig: Signature{Name: "strcpy", Params: []Param{{Name: "dest", Kind: Ptr}, {Name: "src", Kind: Ptr, ReadOnly: true}}, Doc: "null-terminated copy"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.Strcpy(a[0].Ptr(), a[1].Ptr())
			return 0
		},
	},
	{
		sig: Signature{
			Name: "memfill",
			Params: []Param{
				{Name: "dest", Kind: Ptr},
				{Name: "src", Kind: Ptr, ReadOnly: true},
				{Name: "element_size_in_bytes", Kind: I32},
				{Name: "element_count", Kind: I32},
			},
			Doc: "tiles element_count copies of an element_size pattern",
		},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.Memfill(a[0].Ptr(), a[1].Ptr(), a[2].Int32(), a[3].Int32())
			return 0
		},
	},
	{
		sig: Signature{Name: "memcpy_block", Params: []Param{{Name: "dest", Kind: Ptr}, {Name: "src", Kind: Ptr, ReadOnly: true}, {Name: "n", Kind: I32}}, Doc: "raw n-byte copy"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.MemcpyBlock(a[0].Ptr(), a[1].Ptr(), a[2].Int32())
			return 0
		},
	},
	{
		sig: Signature{Name: "itoa", Params: []Param{{Name: "value", Kind: I32}, {Name: "str", Kind: Ptr}}, Doc: "null-terminated decimal text, buffer of at least 12 bytes"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.Itoa(a[0].Int32(), a[1].Ptr())
			return 0
		},
	},
	{
		sig: Signature{Name: "utoa", Params: []Param{{Name: "value", Kind: U32}, {Name: "str", Kind: Ptr}}, Doc: "null-terminated unsigned decimal text, buffer of at least 11 bytes"},
		fn: func(rt *prelude.Runtime, a []Word) Word {
			rt.ItoaUnsigned(uint32(a[0]), a[1].Ptr())
			return 0
		},
	},
}
