// Package signature derives C declarations from raw registry commands: the
// return type, the parameter clause and the forwarding call expression.
//
// Type spellings are separated from identifiers by removing the last
// occurrence of the identifier from the flattened element text. This assumes
// a name never appears after its own type tokens, which holds for gl.xml but
// is not a C parser.
package signature

import (
	"strings"

	"github.com/glremix/glwrap/registry"
)

type Param struct {
	// Decl is the whitespace-normalized declaration, type and name.
	Decl string
	Name string
	// Type is Decl without the parameter name.
	Type string
}

type Command struct {
	Name       string
	ReturnType string
	Params     []Param
}

// IsVoid reports whether the command returns nothing.
func (c Command) IsVoid() bool {
	return c.ReturnType == "void"
}

// Clause returns the parenthesized parameter declaration list.
func (c Command) Clause() string {
	decls := make([]string, len(c.Params))
	for i, p := range c.Params {
		decls[i] = p.Decl
	}
	return "(" + strings.Join(decls, ", ") + ")"
}

// CallExpr returns the parenthesized argument list a wrapper forwards.
func (c Command) CallExpr() string {
	var names []string
	for _, p := range c.Params {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func (c Command) ParamTypes() []string {
	types := make([]string, len(c.Params))
	for i, p := range c.Params {
		types[i] = p.Type
	}
	return types
}

// Extract builds the signature of cmd.
func Extract(cmd registry.Command) (Command, error) {
	if cmd.Proto == nil {
		return Command{}, &registry.MalformedCommandError{Reason: "missing <proto> block"}
	}

	name := cmd.Proto.Name
	if !cmd.Proto.HasName || name == "" {
		return Command{}, &registry.MalformedCommandError{Reason: "missing <name> entry"}
	}

	params := make([]Param, len(cmd.Params))
	for i, p := range cmd.Params {
		params[i] = extractParam(p)
	}

	return Command{
		Name:       name,
		ReturnType: Normalize(cutLast(cmd.Proto.Text, name)),
		Params:     params,
	}, nil
}

func extractParam(f registry.Fragment) Param {
	decl := Normalize(f.Text)
	typ := decl
	if f.Name != "" {
		if i := strings.LastIndex(typ, f.Name); i >= 0 {
			typ = typ[:i]
		}
	}

	return Param{
		Decl: decl,
		Name: f.Name,
		Type: strings.TrimSpace(typ),
	}
}

// cutLast removes the last occurrence of name from s.
func cutLast(s, name string) string {
	i := strings.LastIndex(s, name)
	if i < 0 {
		return s
	}
	return s[:i] + s[i+len(name):]
}

// Normalize collapses every whitespace run to a single space and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
