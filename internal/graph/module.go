package graph

import "strings"

// Root returns the first component of a dotted module name.
// Root("mypackage.foo.bar") == "mypackage".
func Root(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// IsDescendant reports whether name is a strict descendant of ancestor,
// judged purely by dotted-name structure.
func IsDescendant(name, ancestor string) bool {
	return strings.HasPrefix(name, ancestor+".")
}

// IsSameOrDescendant reports whether name equals ancestor or descends from it.
func IsSameOrDescendant(name, ancestor string) bool {
	return name == ancestor || IsDescendant(name, ancestor)
}

// Join builds a dotted module name from a parent and a child component.
// An empty parent yields the child unchanged.
func Join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
