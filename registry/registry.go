// Package registry reads the Khronos XML API registry (gl.xml) and selects
// the commands that belong to a range of core versions plus a set of
// allow-listed extensions.
package registry

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Command is a raw <command> entry. Proto is nil when the registry entry
// has no <proto> element.
type Command struct {
	Proto  *Fragment  `xml:"proto"`
	Params []Fragment `xml:"param"`
}

// Name returns the command name from its prototype, or "" if there is none.
func (c Command) Name() string {
	if c.Proto == nil {
		return ""
	}
	return c.Proto.Name
}

// CommandTable indexes commands by name.
type CommandTable map[string]Command

// Ref is a <command name="..."/> reference inside a require block.
type Ref struct {
	Name string `xml:"name,attr"`
}

type Require struct {
	Commands []Ref `xml:"command"`
}

// Feature is a <feature> block: the commands that make up an API at a version.
type Feature struct {
	API     string    `xml:"api,attr"`
	Name    string    `xml:"name,attr"`
	Number  string    `xml:"number,attr"`
	Require []Require `xml:"require"`
}

// Extension is an <extension> block under <extensions>. Its supported APIs
// are not consulted; allow-listing an extension selects it.
type Extension struct {
	Name    string    `xml:"name,attr"`
	Require []Require `xml:"require"`
}

type commandSection struct {
	Commands []Command `xml:"command"`
}

// document matches any root element; only the children below are read.
type document struct {
	Commands   *commandSection `xml:"commands"`
	Features   []Feature       `xml:"feature"`
	Extensions []Extension     `xml:"extensions>extension"`
}

// Registry is a parsed registry document.
type Registry struct {
	Commands   CommandTable
	Features   []Feature
	Extensions []Extension
}

// Load parses the registry document at path.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	reg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return reg, nil
}

// Parse decodes a registry document. Commands without a prototype or a
// name are skipped; a document without a <commands> section is a
// *SchemaError. When a name is defined more than once the last definition
// wins.
func Parse(r io.Reader) (*Registry, error) {
	tr := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	br := bufio.NewReader(transform.NewReader(r, tr))

	var doc document
	if err := xml.NewDecoder(br).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	if doc.Commands == nil {
		return nil, &SchemaError{Reason: "missing <commands> section"}
	}

	table := make(CommandTable, len(doc.Commands.Commands))
	for _, cmd := range doc.Commands.Commands {
		if cmd.Proto == nil || !cmd.Proto.HasName {
			continue
		}

		name := cmd.Proto.Name
		if name == "" {
			continue
		}

		if _, ok := table[name]; ok {
			slog.Debug("duplicate command definition, keeping last", "command", name)
		}
		table[name] = cmd
	}

	slog.Debug("parsed registry", "commands", len(table), "features", len(doc.Features), "extensions", len(doc.Extensions))

	return &Registry{
		Commands:   table,
		Features:   doc.Features,
		Extensions: doc.Extensions,
	}, nil
}
