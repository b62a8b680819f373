package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllowlistFile(t *testing.T) {
	t.Run("loads names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[allowlist]
names = ["JWT", "Bearer Token"]
`), 0600))

		names, err := LoadAllowlistFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"JWT", "Bearer Token"}, names)
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		names, err := LoadAllowlistFile("")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		names, err := LoadAllowlistFile(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("invalid TOML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.toml")
		require.NoError(t, os.WriteFile(path, []byte(`[allowlist`), 0600))

		_, err := LoadAllowlistFile(path)
		assert.ErrorIs(t, err, ErrInvalidTOML)
	})

	t.Run("file without allowlist table yields nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.toml")
		require.NoError(t, os.WriteFile(path, []byte(`[other]`), 0600))

		names, err := LoadAllowlistFile(path)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestMergeAllowlists(t *testing.T) {
	merged := MergeAllowlists(
		[]string{"JWT", "Slack Token"},
		[]string{"Slack Token", "Bearer Token"},
		nil,
	)
	assert.Equal(t, []string{"JWT", "Slack Token", "Bearer Token"}, merged)
	assert.Empty(t, MergeAllowlists(nil, nil))
}
