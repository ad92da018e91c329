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

package alertsdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgx-contrib/pgxotel"

	"github.com/cardinalhq/myalerts/alertsdb/migrations"
	"github.com/cardinalhq/myalerts/internal/dbopen"
)

// EnvPrefix is the prefix of the ALERTSDB_* connection variables.
const EnvPrefix = "ALERTSDB"

// NewConnectionPool creates a traced pgx pool for url.
func NewConnectionPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.ConnConfig.Tracer = &pgxotel.QueryTracer{
		Name: "alertsdb",
	}

	return pgxpool.NewWithConfig(ctx, cfg)
}

// Connect opens a pool from the environment and verifies the schema version.
func Connect(ctx context.Context, opts ...migrations.CheckOption) (*pgxpool.Pool, error) {
	connectionString, err := dbopen.GetDatabaseURLFromEnv(EnvPrefix)
	if err != nil {
		return nil, errors.Join(dbopen.ErrDatabaseNotConfigured, fmt.Errorf("failed to get ALERTSDB connection string: %w", err))
	}

	pool, err := NewConnectionPool(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	if err := migrations.CheckVersion(ctx, pool, opts...); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ALERTSDB migration version check failed: %w", err)
	}
	return pool, nil
}

// ConnectStore is Connect wrapped in a Store.
func ConnectStore(ctx context.Context, opts ...migrations.CheckOption) (*Store, error) {
	pool, err := Connect(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}
