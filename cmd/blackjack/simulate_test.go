package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRules(t *testing.T) {
	t.Run("defaults when no file given", func(t *testing.T) {
		r, err := loadRules("", false)
		require.NoError(t, err)
		assert.True(t, r.HitSoft17)
		assert.Equal(t, "H17", r.Label())
	})

	t.Run("s17 flag overrides", func(t *testing.T) {
		r, err := loadRules("", true)
		require.NoError(t, err)
		assert.False(t, r.HitSoft17)
		assert.Equal(t, "S17", r.Label())
	})

	t.Run("file then flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
rules {
  late_surrender = false
  resplit_limit  = 1
}
`), 0o644))

		r, err := loadRules(path, true)
		require.NoError(t, err)
		assert.False(t, r.LateSurrender)
		assert.Equal(t, 1, r.ResplitLimit)
		assert.False(t, r.HitSoft17)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		r, err := loadRules(filepath.Join(t.TempDir(), "nope.hcl"), false)
		require.NoError(t, err)
		assert.Equal(t, "H17", r.Label())
	})
}
