// Package strings holds the small string and slice helpers modules share
package strings

import (
	"path"
	std "strings"
)

// Or is in unless in is empty
func Or[S ~[]E, E any](in, def S) S {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) != "" {
		return s
	}
	panic(name + " is required")
}

// MustPrefix cleans a route prefix to one leading slash and no trailing one
// the bare root is refused
func MustPrefix(s string) string {
	p := path.Clean("/" + std.TrimSpace(s))
	if p == "/" {
		panic("route prefix is required")
	}
	return p
}
