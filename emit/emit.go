// Package emit renders the generated wrapper and linker alias listings.
package emit

import (
	"fmt"
	"strings"

	"github.com/glremix/glwrap/signature"
)

// Entry is one selected command with its stdcall argument stack size.
type Entry struct {
	Command   signature.Command
	StackSize int
}

type Options struct {
	Header      string
	VoidMacro   string
	ReturnMacro string
	// TargetMacro is the preprocessor symbol defined on 32-bit x86 builds.
	TargetMacro  string
	ExportPrefix string
}

func DefaultOptions() Options {
	return Options{
		Header:       "// Auto-generated. Do not edit manually.",
		VoidMacro:    "GLREMIX_GL_VOID_WRAPPER",
		ReturnMacro:  "GLREMIX_GL_RETURN_WRAPPER",
		TargetMacro:  "_M_IX86",
		ExportPrefix: "glRemix_",
	}
}

// Symbol returns the undecorated name of the wrapper implementing e.
func (o Options) Symbol(e Entry) string {
	return o.ExportPrefix + e.Command.Name
}

// DecoratedSymbol returns the 32-bit x86 stdcall name of the wrapper
// implementing e: a leading underscore and the argument byte count.
func (o Options) DecoratedSymbol(e Entry) string {
	return fmt.Sprintf("_%s@%d", o.Symbol(e), e.StackSize)
}

// Wrappers renders one wrapper macro invocation per entry, in order.
func Wrappers(entries []Entry, opts Options) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, opts.Header)

	for _, e := range entries {
		c := e.Command
		if c.IsVoid() {
			fmt.Fprintf(&sb, "%s(%s, %s, %s)\n", opts.VoidMacro, c.Name, c.Clause(), c.CallExpr())
		} else {
			fmt.Fprintf(&sb, "%s(%s, %s, %s, %s)\n", opts.ReturnMacro, c.ReturnType, c.Name, c.Clause(), c.CallExpr())
		}
	}

	return sb.String()
}

// Aliases renders linker export directives mapping each public name to its
// wrapper. On 32-bit x86 the wrapper symbol carries the stdcall decoration.
func Aliases(entries []Entry, opts Options) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, opts.Header)

	fmt.Fprintf(&sb, "#if defined(%s)\n", opts.TargetMacro)
	for _, e := range entries {
		fmt.Fprintf(&sb, "#pragma comment(linker, \"/export:%s=%s\")\n", e.Command.Name, opts.DecoratedSymbol(e))
	}

	fmt.Fprintln(&sb, "#else")
	for _, e := range entries {
		fmt.Fprintf(&sb, "#pragma comment(linker, \"/export:%s=%s\")\n", e.Command.Name, opts.Symbol(e))
	}

	fmt.Fprintln(&sb, "#endif")

	return sb.String()
}
