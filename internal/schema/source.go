// Package schema loads and normalizes naming-schema documents.
//
// A document is a nested structure of mappings, lists and scalars (see
// Normalize for the accepted shapes). Parsing the serialized form is this
// package's job; the template compiler only ever sees api.Schema values.
package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Source supplies a raw schema document. Load is expected to be called
// once per tree construction; implementations need not cache.
type Source interface {
	Load() (map[string]any, error)
}

// FileSource reads a schema document from a file. The format is chosen by
// extension: .yaml/.yml or .json.
type FileSource struct {
	fs   billy.Filesystem
	path string
}

// NewFileSource returns a FileSource for a path on the host filesystem.
func NewFileSource(path string) *FileSource {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &FileSource{fs: osfs.New(filepath.Dir(abs)), path: filepath.Base(abs)}
}

// NewFileSourceFS returns a FileSource reading path from the given
// filesystem. Tests use this with memfs.
func NewFileSourceFS(fs billy.Filesystem, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// Load implements Source.
func (s *FileSource) Load() (map[string]any, error) {
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", s.path, err)
	}

	var doc any
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", s.path, err)
		}
	case ".json":
		doc, err = oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", s.path, err)
		}
	default:
		return nil, fmt.Errorf("schema %s: unsupported extension %q", s.path, ext)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema %s: document root must be a mapping, got %T", s.path, doc)
	}
	return m, nil
}

// MapSource wraps an already-parsed document. The tree deep-copies on
// load, so the caller may keep and reuse the map.
type MapSource map[string]any

// Load implements Source.
func (s MapSource) Load() (map[string]any, error) {
	return s, nil
}

// DeepCopy clones a parsed document so later mutation of the source
// cannot leak into a compiled tree.
func DeepCopy(doc map[string]any) map[string]any {
	return deepCopyValue(doc).(map[string]any)
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopyValue(val)
		}
		return out
	default:
		return v
	}
}
