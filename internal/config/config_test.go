package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TOKEN_AUTH_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 100, cfg.TeamFee)
		assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "payment-screenshots", cfg.StorageBucket)
		assert.False(t, cfg.IsDevelopment())
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("TOKEN_AUTH_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.ErrorContains(t, err, "parse env: ")
		assert.ErrorContains(t, err, "TOKEN_AUTH_SECRET")
	})

	t.Run("invalid fee", func(t *testing.T) {
		t.Setenv("TOKEN_AUTH_SECRET", "secret")
		t.Setenv("TEAM_FEE", "0")

		_, err := Load()
		assert.EqualError(t, err, "TEAM_FEE must be positive, got 0")
	})
}
