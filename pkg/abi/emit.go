package abi

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"goprelude/pkg/prelude"
)

var ErrUnknownLanguage = errors.New("unknown declaration language")

// StringStructName is the aggregate code generators use for owned strings.
const StringStructName = "prelude.struct.String"

const generatedBanner = "Code generated by goprelude; DO NOT EDIT."

func cType(p Param) string {
	switch p.Kind {
	case I32:
		return "int32_t"
	case U32:
		return "uint32_t"
	case Ptr:
		if p.ReadOnly {
			return "const char*"
		}
		return "char*"
	}
	return "void"
}

func llvmType(k Kind) string {
	switch k {
	case I32, U32:
		return "i32"
	case Ptr:
		return "ptr"
	}
	return "void"
}

// CPrototype renders sig as a C declaration without the trailing semicolon.
func CPrototype(sig Signature) string {
	params := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		params = append(params, cType(p)+" "+p.Name)
	}
	ps := strings.Join(params, ", ")
	if ps == "" {
		ps = "void"
	}
	return fmt.Sprintf("%s %s(%s)", cType(Param{Kind: sig.Result}), sig.Symbol(), ps)
}

// LLVMDeclaration renders sig as an LLVM IR declare line.
func LLVMDeclaration(sig Signature) string {
	params := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		params = append(params, llvmType(p.Kind))
	}
	return fmt.Sprintf("declare %s @%s(%s)", llvmType(sig.Result), sig.Symbol(), strings.Join(params, ", "))
}

// WriteCHeader writes a header declaring every registered primitive.
func WriteCHeader(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "/* %s */\n", generatedBanner)
	sb.WriteString("#ifndef GOPRELUDE_H\n#define GOPRELUDE_H\n\n#include <stdint.h>\n\n")
	fmt.Fprintf(&sb, "#define PRELUDE_LINE_BUFFER_SIZE %d\n", prelude.LineBufferSize)
	fmt.Fprintf(&sb, "#define PRELUDE_ITOA_BUFFER_SIZE %d\n", prelude.ItoaBufferSize)
	fmt.Fprintf(&sb, "#define PRELUDE_UTOA_BUFFER_SIZE %d\n", prelude.UitoaBufferSize)
	for _, sig := range Signatures() {
		sb.WriteString("\n")
		if sig.Doc != "" {
			fmt.Fprintf(&sb, "/* %s: %s */\n", sig.Name, sig.Doc)
		}
		sb.WriteString(CPrototype(sig) + ";\n")
	}
	sb.WriteString("\n#endif /* GOPRELUDE_H */\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteLLVM writes the external declarations a generated module needs.
func WriteLLVM(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; %s\n\n", generatedBanner)
	fmt.Fprintf(&sb, "%%%s = type { ptr }\n\n", StringStructName)
	for _, sig := range Signatures() {
		sb.WriteString(LLVMDeclaration(sig) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDeclarations dispatches on lang ("c" or "llvm").
func WriteDeclarations(w io.Writer, lang string) error {
	switch strings.ToLower(lang) {
	case "c", "h":
		return WriteCHeader(w)
	case "llvm", "ll":
		return WriteLLVM(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}
