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

package migrations

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion_Embedded(t *testing.T) {
	v, err := LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1760832000), v)
}

func TestLatestVersion(t *testing.T) {
	files := fstest.MapFS{
		"100_a.up.sql":   {Data: []byte("select 1")},
		"100_a.down.sql": {Data: []byte("select 1")},
		"250_b.up.sql":   {Data: []byte("select 1")},
		"notes.txt":      {Data: []byte("ignored")},
		"x_bad.up.sql":   {Data: []byte("ignored")},
	}
	v, err := latestVersion(files)
	require.NoError(t, err)
	assert.Equal(t, uint(250), v)

	_, err = latestVersion(fstest.MapFS{"README.md": {}})
	assert.Error(t, err)
}

func TestCheckOptions(t *testing.T) {
	opts := DefaultCheckOptions()
	assert.Equal(t, CheckModeWait, opts.Mode)

	for _, o := range []CheckOption{
		WithCheckMode(CheckModeWarn),
		WithTimeout(time.Second),
		WithRetryInterval(10 * time.Millisecond),
	} {
		o(&opts)
	}
	assert.Equal(t, CheckModeWarn, opts.Mode)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, 10*time.Millisecond, opts.RetryInterval)
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("ALERTSDB_MIGRATION_CHECK_ENABLED", "false")
	t.Setenv("MIGRATION_CHECK_TIMEOUT", "3s")
	t.Setenv("MIGRATION_CHECK_RETRY_INTERVAL", "bogus")
	t.Setenv("MIGRATION_CHECK_ALLOW_DIRTY", "TRUE")

	opts := DefaultCheckOptions()
	applyEnvironmentOverrides(&opts)
	assert.Equal(t, CheckModeSkip, opts.Mode)
	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.Equal(t, 5*time.Second, opts.RetryInterval)
	assert.True(t, opts.AllowDirty)
}
