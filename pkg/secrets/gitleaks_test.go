package secrets

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportGitleaksRules(t *testing.T) {
	t.Run("imports the full default ruleset", func(t *testing.T) {
		patterns, err := ImportGitleaksRules()
		require.NoError(t, err)
		assert.NotEmpty(t, patterns)

		assert.True(t, sort.SliceIsSorted(patterns, func(i, j int) bool {
			return patterns[i].Name < patterns[j].Name
		}))
		for _, p := range patterns {
			assert.Equal(t, OriginCustom, p.Origin)
			assert.NotEmpty(t, p.Expr)
		}
	})

	t.Run("filters by rule id", func(t *testing.T) {
		patterns, err := ImportGitleaksRules("github-pat")
		require.NoError(t, err)
		require.Len(t, patterns, 1)
		assert.Equal(t, "github-pat", patterns[0].Name)
	})

	t.Run("imported rules register cleanly", func(t *testing.T) {
		patterns, err := ImportGitleaksRules("github-pat", "gitlab-pat")
		require.NoError(t, err)

		// Imported names may collide with builtins only by accident;
		// these two do not.
		reg, err := NewRegistry(patterns, nil)
		require.NoError(t, err)
		assert.Equal(t, len(BuiltinPatterns())+len(patterns), reg.Len())
	})
}
