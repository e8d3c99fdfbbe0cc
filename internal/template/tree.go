// Package template compiles naming schemas into addressable path
// templates.
//
// A Tree is built once from a schema document, registering every
// non-preserved segment in a flat index under its schema key. BuildPath
// answers queries by key plus a token map, walking the segment's ancestor
// chain and substituting tokens at each level. After compilation the tree
// is read-only and safe for concurrent BuildPath calls.
package template

import (
	"fmt"
	"path"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/hydro-pipeline/hydro/api"
	"github.com/hydro-pipeline/hydro/internal/pattern"
	"github.com/hydro-pipeline/hydro/internal/schema"
)

// Tree owns the compiled template hierarchy. All nodes live in the
// arena slice; the index maps logical keys to arena ids.
type Tree struct {
	source   schema.Source
	rootPath string

	raw   map[string]any // deep-copied schema document
	sch   *api.Schema
	nodes []node
	index map[string]int32

	// Token-requirement index: each compiled node's bitmap holds the
	// interned ids of every field its full ancestor chain needs.
	fieldID   map[string]uint32
	fieldName []string
	required  []*roaring.Bitmap // parallel to nodes
}

// Option configures a Tree at construction.
type Option func(*Tree)

// WithSource sets the schema source. New loads and compiles it
// immediately.
func WithSource(src schema.Source) Option {
	return func(t *Tree) { t.source = src }
}

// WithRootPath sets the prefix prepended to every built path.
func WithRootPath(root string) Option {
	return func(t *Tree) { t.rootPath = root }
}

// New constructs a Tree. With a source configured the schema is loaded
// and compiled before returning; without one the tree starts empty and
// Load or Compile must be called before BuildPath can succeed.
func New(opts ...Option) (*Tree, error) {
	t := &Tree{
		index:   make(map[string]int32),
		fieldID: make(map[string]uint32),
	}
	for _, o := range opts {
		o(t)
	}
	if t.source != nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Load reads the schema document from the configured source and compiles
// it. Fails with ErrNoSource when no source was configured.
func (t *Tree) Load() error {
	if err := t.LoadOnly(); err != nil {
		return err
	}
	return t.Compile()
}

// LoadOnly reads and deep-copies the schema document without compiling,
// for callers that want to inspect the document first.
func (t *Tree) LoadOnly() error {
	if t.source == nil {
		return ErrNoSource
	}
	doc, err := t.source.Load()
	if err != nil {
		return err
	}
	t.raw = schema.DeepCopy(doc)
	return nil
}

// Document returns a copy of the loaded schema document, or nil when
// nothing has been loaded.
func (t *Tree) Document() map[string]any {
	if t.raw == nil {
		return nil
	}
	return schema.DeepCopy(t.raw)
}

// Schema returns the normalized schema from the last compile, or nil
// when the tree has not been compiled.
func (t *Tree) Schema() *api.Schema { return t.sch }

// Compile rebuilds the node arena and key index from the loaded
// document. A tree with no document compiles to an empty index.
func (t *Tree) Compile() error {
	t.nodes = t.nodes[:0]
	t.required = t.required[:0]
	t.index = make(map[string]int32)
	t.fieldID = make(map[string]uint32)
	t.fieldName = t.fieldName[:0]
	t.sch = nil

	if t.raw == nil {
		return nil
	}

	sch, err := schema.Normalize(t.raw)
	if err != nil {
		return err
	}
	for _, root := range sch.Roots {
		if err := t.compileChildren(root.Children, -1); err != nil {
			return fmt.Errorf("schema root %q: %w", root.Name, err)
		}
	}
	t.sch = sch
	return nil
}

func (t *Tree) compileChildren(children []api.Node, parent int32) error {
	for _, c := range children {
		nd := node{key: c.Name, preserve: c.Preserve, parent: parent}

		req := roaring.New()
		if parent >= 0 {
			req = t.required[parent].Clone()
		}
		if c.Preserve {
			nd.segment = c.Name
		} else {
			pat, err := pattern.Compile(c.Pattern())
			if err != nil {
				return fmt.Errorf("node %q: %w", c.Name, err)
			}
			nd.pat = pat
			for _, f := range pat.Fields() {
				req.Add(t.internField(f))
			}
		}

		id := int32(len(t.nodes))
		t.nodes = append(t.nodes, nd)
		t.required = append(t.required, req)
		if !c.Preserve {
			// Later declarations of the same key overwrite earlier ones.
			t.index[c.Name] = id
		}
		if len(c.Children) > 0 {
			if err := t.compileChildren(c.Children, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Tree) internField(name string) uint32 {
	if id, ok := t.fieldID[name]; ok {
		return id
	}
	id := uint32(len(t.fieldName))
	t.fieldID[name] = id
	t.fieldName = append(t.fieldName, name)
	return id
}

// BuildPath resolves the template registered under key with the supplied
// tokens and prefixes the tree's root path. Unknown keys, including every
// key on a tree that has not been compiled, fail with ErrKeyNotFound.
func (t *Tree) BuildPath(key string, tokens Tokens) (string, error) {
	n, ok := t.Node(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	p, err := n.Resolve(tokens)
	if err != nil {
		return "", err
	}
	if t.rootPath == "" {
		return p, nil
	}
	return path.Join(t.rootPath, p), nil
}

// Node returns the handle registered under key.
func (t *Tree) Node(key string) (Node, bool) {
	id, ok := t.index[key]
	if !ok {
		return Node{}, false
	}
	return Node{t: t, id: id}, true
}

// Keys returns every registered logical key, sorted.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, len(t.index))
	for k := range t.index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RootPath returns the configured path prefix.
func (t *Tree) RootPath() string { return t.rootPath }

// RequiredTokens returns the names of every token needed to build the
// path for key, in first-use order across the compiled schema.
func (t *Tree) RequiredTokens(key string) ([]string, error) {
	id, ok := t.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	var names []string
	it := t.required[id].Iterator()
	for it.HasNext() {
		names = append(names, t.fieldName[it.Next()])
	}
	return names, nil
}

// ResolvableKeys returns the sorted logical keys whose full ancestor
// chains can be resolved with the supplied token names. Token values are
// not inspected.
func (t *Tree) ResolvableKeys(tokens Tokens) []string {
	avail := roaring.New()
	for name := range tokens {
		if id, ok := t.fieldID[name]; ok {
			avail.Add(id)
		}
	}

	var keys []string
	for key, id := range t.index {
		if roaring.AndNot(t.required[id], avail).IsEmpty() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
