package template

import "github.com/hydro-pipeline/hydro/internal/pattern"

// Tokens maps placeholder names to the values that fill them. Values are
// typically strings or integers; integer-valued placeholders may use a
// zero-pad width in the pattern.
type Tokens map[string]any

// node is the arena record for one path segment. Nodes are stored in the
// owning tree's slice and reference their parent by index, so the
// ancestry chain is acyclic by construction.
type node struct {
	key      string
	segment  string // literal segment, preserved nodes only
	pat      pattern.Pattern
	preserve bool
	parent   int32 // arena index, -1 for top-level nodes
}

// Node is a handle on one template node inside a Tree. The zero value is
// not valid; obtain handles from Tree.Node.
type Node struct {
	t  *Tree
	id int32
}

// Key returns the schema key the node was declared under.
func (n Node) Key() string { return n.t.nodes[n.id].key }

// Preserve reports whether the node's segment is literal.
func (n Node) Preserve() bool { return n.t.nodes[n.id].preserve }

// Pattern returns the node's naming pattern text.
func (n Node) Pattern() string {
	nd := &n.t.nodes[n.id]
	if nd.preserve {
		return nd.segment
	}
	return nd.pat.String()
}

// Parent returns the node's parent and whether one exists.
func (n Node) Parent() (Node, bool) {
	p := n.t.nodes[n.id].parent
	if p < 0 {
		return Node{}, false
	}
	return Node{t: n.t, id: p}, true
}

// Resolve builds the path for this node and its ancestor chain. An
// optional child suffix is appended below this node's segment. Tokens
// must be non-nil; every placeholder of every non-preserved segment on
// the chain must have a value or a *MissingTokenError is returned, with
// no partial substitution. The tree's root path is not applied here; see
// Tree.BuildPath.
func (n Node) Resolve(tokens Tokens, child ...string) (string, error) {
	if tokens == nil {
		return "", ErrNilTokens
	}

	suffix := ""
	if len(child) > 0 {
		suffix = child[0]
	}

	for id := n.id; id >= 0; {
		nd := &n.t.nodes[id]
		segment := nd.segment
		if !nd.preserve {
			var err error
			segment, err = nd.pat.Render(tokens)
			if err != nil {
				return "", err
			}
		}
		if suffix == "" {
			suffix = segment
		} else {
			suffix = segment + "/" + suffix
		}
		id = nd.parent
	}
	return suffix, nil
}
