package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydro-pipeline/hydro/api"
)

func TestNormalize(t *testing.T) {
	t.Run("annotated node", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{
				map[string]any{
					"shots": map[string]any{
						"preserve": true,
						"children": []any{
							map[string]any{"shot": map[string]any{"naming": "{sequence}_{shot}"}},
						},
					},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, s.Roots, 1)
		require.Len(t, s.Roots[0].Children, 1)

		shots := s.Roots[0].Children[0]
		assert.True(t, shots.Preserve)
		assert.Equal(t, "shots", shots.Pattern())
		require.Len(t, shots.Children, 1)
		assert.Equal(t, "{sequence}_{shot}", shots.Children[0].Pattern())
	})

	t.Run("preserve ignores naming override", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{
				map[string]any{
					"renders": map[string]any{"preserve": true, "naming": "{ignored}"},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "renders", s.Roots[0].Children[0].Pattern())
	})

	t.Run("plain child list without wrapper", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{
				map[string]any{
					"sequence": []any{
						map[string]any{"shot": nil},
					},
				},
			},
		})
		require.NoError(t, err)
		seq := s.Roots[0].Children[0]
		assert.Equal(t, "{sequence}", seq.Pattern())
		require.Len(t, seq.Children, 1)
		assert.Equal(t, api.Node{Name: "shot"}, seq.Children[0])
	})

	t.Run("mapping without children key is a leaf", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{
				map[string]any{"version": map[string]any{"naming": "v{version:03}"}},
			},
		})
		require.NoError(t, err)
		node := s.Roots[0].Children[0]
		assert.Equal(t, "v{version:03}", node.Naming)
		assert.Empty(t, node.Children)
	})

	t.Run("non-list children value ends the branch", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{
				map[string]any{"a": map[string]any{"children": "oops"}},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, s.Roots[0].Children[0].Children)
	})

	t.Run("null child is a leaf with default naming", func(t *testing.T) {
		s, err := Normalize(map[string]any{
			"film": []any{map[string]any{"shot": nil}},
		})
		require.NoError(t, err)
		assert.Equal(t, "{shot}", s.Roots[0].Children[0].Pattern())
	})

	t.Run("shape errors", func(t *testing.T) {
		for name, doc := range map[string]map[string]any{
			"root not a list":      {"film": "oops"},
			"child not a mapping":  {"film": []any{"oops"}},
			"naming not a string":  {"film": []any{map[string]any{"a": map[string]any{"naming": 3}}}},
			"preserve not a bool":  {"film": []any{map[string]any{"a": map[string]any{"preserve": "yes"}}}},
			"bad grandchild shape": {"film": []any{map[string]any{"a": []any{42}}}},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := Normalize(doc)
				assert.Error(t, err)
			})
		}
	})
}
