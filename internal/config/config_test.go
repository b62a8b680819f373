package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// Missing configuration fails closed: strict mode, no allowlist,
	// builtin patterns only.
	assert.Equal(t, "strict", cfg.Security.Mode)
	assert.Empty(t, cfg.Security.Allowlist)
	assert.Empty(t, cfg.Security.CustomPatterns)
	assert.NotEmpty(t, cfg.Security.LogPath)

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("rejects unknown mode", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Security.Mode = "lenient"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "security.mode")
	})

	t.Run("rejects empty log path", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Security.LogPath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects invalid custom pattern before any event is processed", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Security.CustomPatterns = []secrets.Pattern{
			{Name: "Broken", Expr: `[unclosed`},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, secrets.ErrInvalidPattern)
	})

	t.Run("rejects custom pattern colliding with builtin", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Security.CustomPatterns = []secrets.Pattern{
			{Name: "JWT", Expr: `abc`},
		}
		assert.ErrorIs(t, cfg.Validate(), secrets.ErrDuplicatePattern)
	})

	t.Run("rejects bad logging config", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts valid customs and allowlist", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Security.Allowlist = []string{"JWT"}
		cfg.Security.CustomPatterns = []secrets.Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{20}`, Flags: "i"},
		}
		assert.NoError(t, cfg.Validate())
	})
}
