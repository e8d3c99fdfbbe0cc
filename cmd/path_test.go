package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydro-pipeline/hydro/internal/template"
)

func TestParseTokens(t *testing.T) {
	t.Run("strings and integers", func(t *testing.T) {
		tokens, err := parseTokens([]string{"sequence=sq010", "version=1", "frame=1001"})
		require.NoError(t, err)
		assert.Equal(t, template.Tokens{
			"sequence": "sq010",
			"version":  1,
			"frame":    1001,
		}, tokens)
	})

	t.Run("value may contain equals", func(t *testing.T) {
		tokens, err := parseTokens([]string{"note=a=b"})
		require.NoError(t, err)
		assert.Equal(t, template.Tokens{"note": "a=b"}, tokens)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, f := range []string{"novalue", "=x"} {
			_, err := parseTokens([]string{f})
			assert.Error(t, err, "flag %q", f)
		}
	})

	t.Run("empty", func(t *testing.T) {
		tokens, err := parseTokens(nil)
		require.NoError(t, err)
		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})
}
