package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.BannerTTL)
	assert.Empty(t, cfg.MetricsAddress)
	assert.Equal(t, ":8000", cfg.StubAddress)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACTIVITIES_URL", "https://activities.mergington.edu")
	t.Setenv("ACTIVITIES_TIMEOUT", "3s")
	t.Setenv("ACTIVITIES_BANNER_TTL", "1s")
	t.Setenv("ACTIVITIES_METRICS_ADDRESS", ":9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://activities.mergington.edu", cfg.ServiceURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Second, cfg.BannerTTL)
	assert.Equal(t, ":9091", cfg.MetricsAddress)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ACTIVITIES_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
