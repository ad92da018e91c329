//go:build integration

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

package testhelpers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"

	"github.com/cardinalhq/myalerts/alertsdb"
	"github.com/cardinalhq/myalerts/alertsdb/migrations"
)

// postgresBaseURL returns a server to create scratch databases on. When
// ALERTSDB_TEST_URL is unset a throwaway container is started.
func postgresBaseURL(t *testing.T) string {
	t.Helper()
	if u := os.Getenv("ALERTSDB_TEST_URL"); u != "" {
		return u
	}

	container, err := gnomock.Start(postgres.Preset(
		postgres.WithUser("alerts", "alerts"),
		postgres.WithDatabase("testing_alertsdb"),
		postgres.WithVersion("16"),
	))
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := gnomock.Stop(container); err != nil {
			slog.Error("Failed to stop postgres container", slog.Any("error", err))
		}
	})
	return fmt.Sprintf("postgresql://alerts:alerts@%s/testing_alertsdb?sslmode=disable", container.DefaultAddress())
}

// SetupTestAlertsDB creates a clean alertsdb database with migrations applied.
// Returns a connection pool and registers cleanup with t.Cleanup.
func SetupTestAlertsDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	baseURL := postgresBaseURL(t)
	dbName := fmt.Sprintf("test_alertsdb_%d_%d", time.Now().Unix(), rand.Intn(10000))

	basePool, err := pgxpool.New(ctx, baseURL)
	if err != nil {
		t.Fatalf("Failed to connect to base database: %v", err)
	}
	if _, err := basePool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		basePool.Close()
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	cfg, err := pgxpool.ParseConfig(baseURL)
	if err != nil {
		t.Fatalf("Failed to parse base database url: %v", err)
	}
	cfg.ConnConfig.Database = dbName
	testPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := migrations.RunMigrationsUp(ctx, testPool); err != nil {
		testPool.Close()
		t.Fatalf("Failed to run alertsdb migrations: %v", err)
	}

	t.Cleanup(func() {
		testPool.Close()
		if _, err := basePool.Exec(context.Background(), fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
			slog.Error("Failed to drop test database", slog.String("dbName", dbName), slog.Any("error", err))
		}
		basePool.Close()
	})

	return testPool
}

// NewTestAlertsDBStore creates a store connected to a fresh test database.
func NewTestAlertsDBStore(t *testing.T) *alertsdb.Store {
	return alertsdb.NewStore(SetupTestAlertsDB(t))
}
