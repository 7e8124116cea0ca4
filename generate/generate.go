// Package generate runs the wrapper generator end to end: load the registry,
// select commands, derive signatures and stack sizes, render and write.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/glremix/glwrap/abi"
	"github.com/glremix/glwrap/emit"
	"github.com/glremix/glwrap/logutil"
	"github.com/glremix/glwrap/registry"
	"github.com/glremix/glwrap/signature"
)

var errMissingOption = errors.New("missing required option")

type Options struct {
	RegistryPath string
	Output       string
	// AliasOutput is optional; no alias listing is rendered when empty.
	AliasOutput string

	Selection registry.Selection
	// Widths is the scalar width table; nil means abi.DefaultWidths.
	Widths abi.WidthTable
	Emit   emit.Options
}

// DefaultOptions returns options for the default selection and emitter
// settings. Paths are left empty.
func DefaultOptions() Options {
	return Options{
		Selection: registry.DefaultSelection(),
		Emit:      emit.DefaultOptions(),
	}
}

type Result struct {
	Entries  []emit.Entry
	Wrappers string
	// Aliases is empty unless Options.AliasOutput was set.
	Aliases string
}

// Build derives and renders the listings for reg without touching the
// filesystem.
func Build(reg *registry.Registry, opts Options) (*Result, error) {
	names, err := reg.Select(opts.Selection)
	if err != nil {
		return nil, err
	}

	calc := abi.NewCalculator(opts.Widths)

	entries := make([]emit.Entry, 0, len(names))
	for _, name := range names {
		sig, err := signature.Extract(reg.Commands[name])
		if err != nil {
			var malformed *registry.MalformedCommandError
			if errors.As(err, &malformed) && malformed.Name == "" {
				malformed.Name = name
			}
			return nil, err
		}

		size := calc.StackSize(sig.ParamTypes())
		logutil.Trace("derived signature", "command", name, "return", sig.ReturnType, "params", sig.Clause(), "stack", size)

		entries = append(entries, emit.Entry{Command: sig, StackSize: size})
	}

	result := &Result{
		Entries:  entries,
		Wrappers: emit.Wrappers(entries, opts.Emit),
	}
	if opts.AliasOutput != "" {
		result.Aliases = emit.Aliases(entries, opts.Emit)
	}

	return result, nil
}

// Run loads the registry, builds the listings and writes them. Every
// listing is rendered before the first file is written, and each file is
// replaced atomically. A failed write restores the files written before it.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.RegistryPath == "" {
		return nil, fmt.Errorf("%w: registry path", errMissingOption)
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("%w: output path", errMissingOption)
	}

	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := Build(reg, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := []listing{{opts.Output, result.Wrappers, "wrappers"}}
	if opts.AliasOutput != "" {
		files = append(files, listing{opts.AliasOutput, result.Aliases, "linker aliases"})
	}

	// The listings only make sense together: if a later file cannot be
	// written, the ones already replaced get their previous contents back.
	var written []snapshot
	for _, f := range files {
		prev, err := takeSnapshot(f.path)
		if err == nil {
			err = writeFile(f.path, f.content)
		}
		if err != nil {
			rollback(written)
			return nil, err
		}

		written = append(written, prev)
		slog.Info("wrote "+f.what, "path", f.path, "commands", len(result.Entries))
	}

	return result, nil
}

type listing struct {
	path, content, what string
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := atomicwriter.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// snapshot is an output file as it was before Run replaced it.
type snapshot struct {
	path    string
	data    []byte
	mode    os.FileMode
	existed bool
}

func takeSnapshot(path string) (snapshot, error) {
	s := snapshot{path: path}

	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	} else if err != nil {
		return s, fmt.Errorf("stat %s: %w", path, err)
	}

	// atomicwriter refuses anything else, so there is nothing to restore
	if !fi.Mode().IsRegular() {
		return s, nil
	}

	if s.data, err = os.ReadFile(path); err != nil {
		return s, fmt.Errorf("read %s: %w", path, err)
	}
	s.mode = fi.Mode().Perm()
	s.existed = true
	return s, nil
}

func (s snapshot) restore() error {
	if !s.existed {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	return atomicwriter.WriteFile(s.path, s.data, s.mode)
}

func rollback(written []snapshot) {
	for i := len(written) - 1; i >= 0; i-- {
		if err := written[i].restore(); err != nil {
			slog.Warn("failed to restore output", "path", written[i].path, "error", err)
		}
	}
}
