package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/emirpasic/gods/sets/treeset"
)

var (
	DefaultAPIs       = []string{"gl", "glcore"}
	DefaultExtensions = AllowList{"GL_ARB_multitexture"}
)

// AllowList names the extensions whose commands are emitted regardless of
// the core version range.
type AllowList []string

func (a AllowList) Contains(name string) bool {
	return slices.Contains(a, name)
}

// Selection controls which feature and extension blocks contribute commands.
type Selection struct {
	Min, Max   Version
	APIs       []string
	Extensions AllowList
}

// DefaultSelection covers core 1.0 through 1.1 of the desktop gl APIs and
// the default extension allow-list.
func DefaultSelection() Selection {
	return Selection{
		Min:        Version{1, 0},
		Max:        Version{1, 1},
		APIs:       slices.Clone(DefaultAPIs),
		Extensions: slices.Clone(DefaultExtensions),
	}
}

// Select returns the sorted, deduplicated names of every command required by
// a matching feature or allow-listed extension. Every name must resolve in
// the command table; otherwise the complete sorted set of missing names is
// returned as a *MissingCommandError.
func (r *Registry) Select(sel Selection) ([]string, error) {
	set := treeset.NewWithStringComparator()

	for _, feature := range r.Features {
		if !slices.Contains(sel.APIs, feature.API) || feature.Number == "" {
			continue
		}

		v, err := ParseVersion(feature.Number)
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("feature %s: %v", feature.Name, err)}
		}

		if !v.Within(sel.Min, sel.Max) {
			continue
		}

		slog.Debug("selecting feature", "feature", feature.Name, "api", feature.API, "version", v)
		addRequired(set, feature.Require)
	}

	for _, ext := range r.Extensions {
		if !sel.Extensions.Contains(ext.Name) {
			continue
		}

		slog.Debug("selecting extension", "extension", ext.Name)
		addRequired(set, ext.Require)
	}

	names := make([]string, 0, set.Size())
	var missing []string
	for _, v := range set.Values() {
		name := v.(string)
		if _, ok := r.Commands[name]; !ok {
			missing = append(missing, name)
		}
		names = append(names, name)
	}

	if len(missing) > 0 {
		return nil, &MissingCommandError{Names: missing}
	}

	return names, nil
}

func addRequired(set *treeset.Set, requires []Require) {
	for _, req := range requires {
		for _, cmd := range req.Commands {
			if cmd.Name != "" {
				set.Add(cmd.Name)
			}
		}
	}
}
