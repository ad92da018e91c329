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

package dbopen

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDatabaseURLFromEnv_URL(t *testing.T) {
	t.Setenv("ALERTSDB_URL", "postgresql://u@db/alerts")
	got, err := GetDatabaseURLFromEnv("ALERTSDB")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u@db/alerts", got)
}

func TestGetDatabaseURLFromEnv_Parts(t *testing.T) {
	t.Setenv("ALERTSDB_URL", "")
	t.Setenv("ALERTSDB_HOST", "db.internal")
	t.Setenv("ALERTSDB_DBNAME", "alerts")
	t.Setenv("ALERTSDB_USER", "rock")
	t.Setenv("ALERTSDB_PASSWORD", "s3cret")
	t.Setenv("ALERTSDB_SSLMODE", "disable")
	t.Setenv("ALERTSDB_PORT", "")
	t.Setenv("OTEL_SERVICE_NAME", "my alerts/api")

	got, err := GetDatabaseURLFromEnv("ALERTSDB_")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db.internal:5432", u.Host)
	assert.Equal(t, "/alerts", u.Path)
	assert.Equal(t, "rock", u.User.Username())
	pass, _ := u.User.Password()
	assert.Equal(t, "s3cret", pass)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "my_alerts_api", u.Query().Get("application_name"))
}

func TestGetDatabaseURLFromEnv_Missing(t *testing.T) {
	t.Setenv("ALERTSDB_URL", "")
	t.Setenv("ALERTSDB_HOST", "")
	t.Setenv("ALERTSDB_DBNAME", "")

	_, err := GetDatabaseURLFromEnv("ALERTSDB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALERTSDB_HOST")
	assert.Contains(t, err.Error(), "ALERTSDB_DBNAME")
}

func TestApplicationName(t *testing.T) {
	assert.Equal(t, "alerts-api_1", applicationName("alerts-api_1"))
	assert.Equal(t, "a_b", applicationName("a.b"))
	assert.Len(t, applicationName(strings.Repeat("x", 100)), 63)
	assert.Empty(t, applicationName(""))
}
