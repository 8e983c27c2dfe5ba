package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoadRefusesMissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadRefusesShortSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "too-short-to-sign-anything")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", validSecret)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	require.Equal(t, time.Duration(0), cfg.Auth.ClockSkewTolerance())
	require.True(t, cfg.Sweep.Enabled)
	require.Equal(t, "0 3 * * *", cfg.Sweep.Cron)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", validSecret)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("AUTH_CLOCK_SKEW_TOLERANCE_MINUTES", "5")
	t.Setenv("SWEEP_CRON", "* * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 5*time.Minute, cfg.Auth.ClockSkewTolerance())
	require.Equal(t, "* * * * *", cfg.Sweep.Cron)
}
