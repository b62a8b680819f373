package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Run("builtins only", func(t *testing.T) {
		reg, err := NewRegistry(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, len(BuiltinPatterns()), reg.Len())
	})

	t.Run("builtins precede customs", func(t *testing.T) {
		reg, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{20}`},
		}, nil)
		require.NoError(t, err)

		names := reg.Names()
		assert.Equal(t, "Internal Token", names[len(names)-1])
		assert.Equal(t, BuiltinPatterns()[0].Name, names[0])
	})

	t.Run("custom origin recorded", func(t *testing.T) {
		reg, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{20}`},
		}, nil)
		require.NoError(t, err)

		patterns := reg.Patterns()
		last := patterns[len(patterns)-1]
		assert.Equal(t, OriginCustom, last.Origin)
		assert.Equal(t, OriginBuiltin, patterns[0].Origin)
	})

	t.Run("allowlist removes builtin by exact name", func(t *testing.T) {
		reg, err := NewRegistry(nil, []string{"JWT"})
		require.NoError(t, err)
		assert.NotContains(t, reg.Names(), "JWT")
		assert.Equal(t, len(BuiltinPatterns())-1, reg.Len())
	})

	t.Run("allowlist removes custom by exact name", func(t *testing.T) {
		reg, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{20}`},
		}, []string{"Internal Token"})
		require.NoError(t, err)
		assert.NotContains(t, reg.Names(), "Internal Token")
	})

	t.Run("allowlist is case-sensitive", func(t *testing.T) {
		reg, err := NewRegistry(nil, []string{"jwt"})
		require.NoError(t, err)
		assert.Contains(t, reg.Names(), "JWT")
	})

	t.Run("invalid custom pattern fails construction", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{
			{Name: "Broken", Expr: `[unclosed`},
		}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Contains(t, err.Error(), "Broken")
	})

	t.Run("custom pattern without name fails", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{{Expr: `abc`}}, nil)
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("duplicate name fails construction", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{
			{Name: "JWT", Expr: `abc`},
		}, nil)
		assert.ErrorIs(t, err, ErrDuplicatePattern)
	})

	t.Run("allowlisting a duplicate name avoids the collision", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{
			{Name: "JWT", Expr: `abc`},
		}, []string{"JWT"})
		assert.NoError(t, err)
	})
}

func TestPatternFlags(t *testing.T) {
	t.Run("i flag makes matching case-insensitive", func(t *testing.T) {
		reg, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{8}`, Flags: "i"},
		}, nil)
		require.NoError(t, err)

		d := NewDetector(reg)
		assert.True(t, d.HasSecrets("ITK_ABCD1234"))
	})

	t.Run("g and u flags are ignored", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{8}`, Flags: "gi"},
		}, nil)
		assert.NoError(t, err)
	})

	t.Run("unsupported flag fails construction", func(t *testing.T) {
		_, err := NewRegistry([]Pattern{
			{Name: "Internal Token", Expr: `itk_[a-z0-9]{8}`, Flags: "x"},
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})
}

func TestMustNewRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		reg := MustNewRegistry()
		assert.NotZero(t, reg.Len())
	})
}

func TestBuiltinPatternsCompile(t *testing.T) {
	for _, p := range BuiltinPatterns() {
		t.Run(p.Name, func(t *testing.T) {
			_, err := compilePattern(p)
			assert.NoError(t, err)
		})
	}
}
