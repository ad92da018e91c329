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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/myalerts/alertsdb"
	"github.com/cardinalhq/myalerts/alertsdb/migrations"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  "Apply the alertsdb schema migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return migrate()
		},
	})
}

func migrate() error {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(5*time.Minute))
	defer cancel()

	pool, err := alertsdb.Connect(ctx, migrations.WithCheckMode(migrations.CheckModeSkip))
	if err != nil {
		return fmt.Errorf("failed to connect to alertsdb: %w", err)
	}
	defer pool.Close()

	slog.Info("Running alertsdb migrations")
	if err := migrations.RunMigrationsUp(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate alertsdb: %w", err)
	}
	slog.Info("alertsdb migrations completed successfully")
	return nil
}
