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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/cardinalhq/myalerts/alertsdb"
	"github.com/cardinalhq/myalerts/config"
	"github.com/cardinalhq/myalerts/internal/alertapi"
	"github.com/cardinalhq/myalerts/internal/alertcache"
	"github.com/cardinalhq/myalerts/internal/alertcount"
	"github.com/cardinalhq/myalerts/internal/navigation"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the connection alerts HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			servicename := "myalerts"
			addlAttrs := attribute.NewSet()
			doneCtx, doneFx, err := setupTelemetry(servicename, &addlAttrs)
			if err != nil {
				return fmt.Errorf("failed to setup telemetry: %w", err)
			}

			defer func() {
				if err := doneFx(); err != nil {
					slog.Error("Error shutting down telemetry", slog.Any("error", err))
				}
			}()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, err := alertsdb.ConnectStore(doneCtx)
			if err != nil {
				slog.Error("Failed to connect to alerts database", slog.Any("error", err))
				return fmt.Errorf("failed to connect to alerts database: %w", err)
			}
			defer store.Close()

			cache, closeCache, err := alertcache.Open(doneCtx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("failed to open alert cache: %w", err)
			}
			defer func() {
				if err := closeCache(); err != nil {
					slog.Warn("Failed to close alert cache", slog.Any("error", err))
				}
			}()

			ttl := cfg.Alerts.TTL()
			if !ttl.Enabled() {
				slog.Info("External count cache disabled", slog.Int("cacheDurationSeconds", cfg.Alerts.CacheDurationSeconds))
			}

			resolver := alertcount.NewResolver(cache, store)
			nav := navigation.New(store, cfg.Alerts.ListingPage)
			server := alertapi.NewServer(cfg.HTTP, resolver, nav, ttl, alertapi.WithReadinessCheck(store))

			g, gctx := errgroup.WithContext(doneCtx)
			g.Go(func() error {
				return server.Run(gctx)
			})
			return g.Wait()
		},
	}

	rootCmd.AddCommand(cmd)
}
