package registry

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Version is a dotted version number as a tuple of integers, so "1.10"
// orders after "1.9".
type Version []int

func ParseVersion(s string) (Version, error) {
	if s == "" {
		return nil, fmt.Errorf("empty version")
	}

	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q", s)
		}
		v[i] = n
	}

	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error. It is meant for
// package-level defaults and tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or +1. Components are compared as integers left to
// right; when one version is a prefix of the other the shorter sorts first.
func (v Version) Compare(o Version) int {
	return slices.Compare(v, o)
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Within reports whether min <= v <= max.
func (v Version) Within(min, max Version) bool {
	return v.Compare(min) >= 0 && v.Compare(max) <= 0
}
