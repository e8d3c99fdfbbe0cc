package api

// Schema represents a parsed naming-schema document.
// Each root is an independent hierarchy of path segments.
type Schema struct {
	// Roots of the template hierarchy.
	Roots []Root `json:"roots"`
}

// Root is a named top-level entry in the schema. Its name is purely
// organisational; only its children become template nodes.
type Root struct {
	// Name of the root entry.
	Name string `json:"name"`
	// Children are the first generation of path segments.
	Children []Node `json:"children,omitempty"`
}

// Node represents one path segment in the hierarchy.
type Node struct {
	// Name is the schema key. It doubles as the logical lookup key for
	// non-preserved nodes and as the literal segment for preserved ones.
	Name string `json:"name"`
	// Naming is the pattern override. Empty means the default "{name}".
	// Ignored when Preserve is set.
	Naming string `json:"naming,omitempty"`
	// Preserve marks the segment as literal: no token substitution, and
	// the node is not independently addressable.
	Preserve bool `json:"preserve,omitempty"`
	// Children segments below this one.
	Children []Node `json:"children,omitempty"`
}

// Pattern returns the effective naming pattern for the node.
func (n Node) Pattern() string {
	if n.Preserve {
		return n.Name
	}
	if n.Naming != "" {
		return n.Naming
	}
	return "{" + n.Name + "}"
}
