// Package abi computes the stdcall argument stack size of a C prototype on
// 32-bit x86, the N in the decorated export name "_func@N".
package abi

import (
	"strings"
)

const (
	// PointerSize is the width of any pointer, reference or function pointer
	// argument. Only 32-bit targets are decorated.
	PointerSize = 4
	// SlotSize is the minimum stack slot; narrower arguments are widened.
	SlotSize = 4
	// DefaultSize is used for type names missing from the width table.
	DefaultSize = 4
)

var qualifiers = map[string]bool{
	"const":    true,
	"volatile": true,
	"struct":   true,
	"enum":     true,
	"GLAPI":    true,
}

type Calculator struct {
	widths WidthTable
}

// NewCalculator returns a Calculator using widths, or DefaultWidths if
// widths is nil.
func NewCalculator(widths WidthTable) *Calculator {
	if widths == nil {
		widths = DefaultWidths()
	}
	return &Calculator{widths: widths}
}

// Normalize separates pointer markers from the surrounding tokens and
// collapses whitespace and commas.
func Normalize(typ string) string {
	typ = strings.ReplaceAll(typ, "*", " * ")
	typ = strings.ReplaceAll(typ, ",", " ")
	return strings.Join(strings.Fields(typ), " ")
}

// ParamSize returns the stack bytes taken by one argument of type typ. An
// empty spelling takes no space.
func (c *Calculator) ParamSize(typ string) int {
	typ = Normalize(typ)
	if typ == "" {
		return 0
	}

	if strings.ContainsAny(typ, "*&(") {
		return PointerSize
	}

	var tokens []string
	for _, tok := range strings.Fields(typ) {
		if !qualifiers[tok] {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return SlotSize
	}

	size, ok := c.widths[strings.Join(tokens, " ")]
	if !ok {
		size = DefaultSize
	}

	return max(size, SlotSize)
}

// StackSize returns the total stack bytes for the argument types, in order.
func (c *Calculator) StackSize(types []string) int {
	var total int
	for _, typ := range types {
		total += c.ParamSize(typ)
	}
	return total
}
