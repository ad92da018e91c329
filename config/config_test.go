// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/myalerts/internal/alertcache"
	"github.com/cardinalhq/myalerts/internal/navigation"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Alerts.CacheDurationSeconds)
	assert.True(t, cfg.Alerts.TTL().Enabled())
	assert.Equal(t, navigation.DefaultListingPage, cfg.Alerts.ListingPage)
	assert.Equal(t, alertcache.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MYALERTS_ALERTS_CACHE_DURATION_SECONDS", "15")
	t.Setenv("MYALERTS_ALERTS_LISTING_PAGE", "/page/connections")
	t.Setenv("MYALERTS_CACHE_BACKEND", " Redis ")
	t.Setenv("MYALERTS_CACHE_REDIS_ADDR", "redis:6380")
	t.Setenv("MYALERTS_CACHE_REDIS_DB", "3")
	t.Setenv("MYALERTS_HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Alerts.CacheDurationSeconds)
	assert.Equal(t, "/page/connections", cfg.Alerts.ListingPage)
	assert.Equal(t, alertcache.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadZeroDurationDisablesExternalTier(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MYALERTS_ALERTS_CACHE_DURATION_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Alerts.CacheDurationSeconds)
	assert.False(t, cfg.Alerts.TTL().Enabled())
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := []byte("alerts:\n  cache_duration_seconds: 120\ncache:\n  redis:\n    prefix: \"tenant-a:\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Alerts.CacheDurationSeconds)
	assert.Equal(t, "tenant-a:", cfg.Cache.Redis.Prefix)
	assert.Equal(t, navigation.DefaultListingPage, cfg.Alerts.ListingPage)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("http:\n  port: 7000\n"), 0o600))
	t.Setenv("MYALERTS_HTTP_PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.HTTP.Port)
}
