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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/myalerts/alertsdb"
	"github.com/cardinalhq/myalerts/config"
	"github.com/cardinalhq/myalerts/internal/alertapi"
	"github.com/cardinalhq/myalerts/internal/alertcache"
	"github.com/cardinalhq/myalerts/internal/alertcount"
	"github.com/cardinalhq/myalerts/internal/badge"
	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/rendercycle"
)

func init() {
	var (
		actor         int64
		cacheDuration int
		fixture       string
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "resolve the connection alert count for one actor",
		RunE: func(c *cobra.Command, _ []string) error {
			if debugEnabled() {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if c.Flags().Changed("cache-duration") {
				cfg.Alerts.CacheDurationSeconds = cacheDuration
			}

			ctx, cancel := handleSignals(context.Background())
			defer cancel()

			var querier connections.Querier
			if fixture != "" {
				src, err := loadFixture(fixture)
				if err != nil {
					return err
				}
				querier = src
			} else {
				store, err := alertsdb.ConnectStore(ctx)
				if err != nil {
					return fmt.Errorf("failed to connect to alerts database: %w", err)
				}
				defer store.Close()
				querier = store
			}

			cache, closeCache, err := alertcache.Open(ctx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("failed to open alert cache: %w", err)
			}
			defer func() { _ = closeCache() }()

			resolver := alertcount.NewResolver(cache, querier)
			return printCount(ctx, c.OutOrStdout(), resolver, connections.ActorID(actor), cfg.Alerts.TTL())
		},
	}

	cmd.Flags().Int64Var(&actor, "actor", 0, "person alias id to resolve the count for")
	cmd.Flags().IntVar(&cacheDuration, "cache-duration", alertcount.DefaultCacheDurationSeconds, "external cache duration in seconds, 0 disables it")
	cmd.Flags().StringVar(&fixture, "fixture", "", "read connection requests from a JSON file instead of the database")
	_ = cmd.MarkFlagRequired("actor")

	rootCmd.AddCommand(cmd)
}

// loadFixture reads a JSON array of work items into a MemorySource.
func loadFixture(path string) (*connections.MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	var items []connections.WorkItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return connections.NewMemorySource(items...), nil
}

func printCount(ctx context.Context, w io.Writer, resolver *alertcount.Resolver, actorID connections.ActorID, ttl alertcount.TTLConfig) error {
	cycle := rendercycle.New(actorID)
	count, ok, err := resolver.Resolve(ctx, cycle, actorID, ttl)
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintln(w, "no actor")
		return err
	}

	html, err := badge.NewLink(alertapi.OpenPath, count).HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "count: %d\nbadge: %s\n", count, html)
	return err
}
