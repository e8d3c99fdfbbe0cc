package schema

import (
	"fmt"
	"sort"

	"github.com/hydro-pipeline/hydro/api"
)

// Normalize converts a raw document into api.Schema, deciding each
// child's shape exactly once. The value under a child name may be:
//
//   - a mapping: annotated node, carrying optional "naming", "preserve",
//     and "children" entries; without a "children" entry the mapping
//     itself stands in for the child list, and since a mapping is not a
//     list that makes the node a leaf
//   - a list: the node's children directly
//   - anything else (usually null): a leaf
//
// A child list is a list of mappings; each mapping may declare one or
// more named children.
func Normalize(doc map[string]any) (*api.Schema, error) {
	s := &api.Schema{}
	for _, name := range sortedKeys(doc) {
		children, err := normalizeChildren(doc[name], name)
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, api.Root{Name: name, Children: children})
	}
	return s, nil
}

func normalizeChildren(v any, where string) ([]api.Node, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("schema entry %q: expected a list of child mappings, got %T", where, v)
	}

	var nodes []api.Node
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema entry %q: child items must be mappings, got %T", where, item)
		}
		for _, name := range sortedKeys(entry) {
			node, err := normalizeNode(name, entry[name])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func normalizeNode(name string, data any) (api.Node, error) {
	node := api.Node{Name: name}

	var childData any
	switch d := data.(type) {
	case map[string]any:
		// Annotated node. Absent "children" falls back to the mapping
		// itself, which is never a list, so such nodes are leaves.
		childData = any(d)
		if c, ok := d["children"]; ok {
			childData = c
		}
		if p, ok := d["preserve"]; ok {
			b, ok := p.(bool)
			if !ok {
				return api.Node{}, fmt.Errorf("schema node %q: preserve must be a boolean, got %T", name, p)
			}
			node.Preserve = b
		}
		if !node.Preserve {
			if n, ok := d["naming"]; ok {
				s, ok := n.(string)
				if !ok {
					return api.Node{}, fmt.Errorf("schema node %q: naming must be a string, got %T", name, n)
				}
				node.Naming = s
			}
		}
	default:
		childData = data
	}

	// Only a list value descends; maps and scalars end the branch here.
	if _, ok := childData.([]any); ok {
		children, err := normalizeChildren(childData, name)
		if err != nil {
			return api.Node{}, err
		}
		node.Children = children
	}
	return node, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
