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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckMode defines how a version mismatch is handled.
type CheckMode int

const (
	// CheckModeWait polls until the schema reaches the expected version or
	// the timeout passes.
	CheckModeWait CheckMode = iota
	// CheckModeWarn logs a mismatch and continues.
	CheckModeWarn
	// CheckModeSkip does not look at the schema at all.
	CheckModeSkip
)

type CheckOptions struct {
	Mode          CheckMode
	Timeout       time.Duration
	RetryInterval time.Duration
	AllowDirty    bool
}

type CheckOption func(*CheckOptions)

func WithCheckMode(mode CheckMode) CheckOption {
	return func(o *CheckOptions) { o.Mode = mode }
}

func WithTimeout(d time.Duration) CheckOption {
	return func(o *CheckOptions) { o.Timeout = d }
}

func WithRetryInterval(d time.Duration) CheckOption {
	return func(o *CheckOptions) { o.RetryInterval = d }
}

func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		Mode:          CheckModeWait,
		Timeout:       60 * time.Second,
		RetryInterval: 5 * time.Second,
	}
}

// applyEnvironmentOverrides lets operators tune the check without a
// redeploy. ALERTSDB_MIGRATION_CHECK_ENABLED=false skips it.
func applyEnvironmentOverrides(o *CheckOptions) {
	if v := os.Getenv("ALERTSDB_MIGRATION_CHECK_ENABLED"); v != "" && strings.ToLower(v) != "true" {
		o.Mode = CheckModeSkip
	}
	if v := os.Getenv("MIGRATION_CHECK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			o.Timeout = d
		}
	}
	if v := os.Getenv("MIGRATION_CHECK_RETRY_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			o.RetryInterval = d
		}
	}
	if v := os.Getenv("MIGRATION_CHECK_ALLOW_DIRTY"); v != "" {
		o.AllowDirty = strings.ToLower(v) == "true"
	}
}

// CheckVersion verifies that the alertsdb schema matches the embedded
// migrations.
func CheckVersion(ctx context.Context, pool *pgxpool.Pool, options ...CheckOption) error {
	opts := DefaultCheckOptions()
	for _, option := range options {
		option(&opts)
	}
	applyEnvironmentOverrides(&opts)

	if opts.Mode == CheckModeSkip {
		slog.Debug("Migration version checking skipped for alertsdb")
		return nil
	}

	expected, err := LatestVersion()
	if err != nil {
		return err
	}

	deadline := time.Now().Add(opts.Timeout)
	ticker := time.NewTicker(opts.RetryInterval)
	defer ticker.Stop()

	for {
		current, dirty, err := currentVersion(pool)
		if err != nil {
			return err
		}
		if dirty && !opts.AllowDirty {
			return fmt.Errorf("alertsdb migration is in dirty state at version %d", current)
		}

		switch {
		case current == expected:
			slog.Info("Migration version check passed", slog.String("database", "alertsdb"), slog.Uint64("version", uint64(current)))
			return nil
		case current > expected:
			return fmt.Errorf("alertsdb version %d is newer than expected version %d - you may need to update the application", current, expected)
		case opts.Mode == CheckModeWarn:
			slog.Warn("alertsdb schema is behind, continuing",
				slog.Uint64("current_version", uint64(current)),
				slog.Uint64("expected_version", uint64(expected)))
			return nil
		case time.Now().After(deadline):
			return fmt.Errorf("timeout waiting for alertsdb migrations: current version %d, expected %d", current, expected)
		}

		slog.Info("Waiting for migrations to complete",
			slog.String("database", "alertsdb"),
			slog.Uint64("current_version", uint64(current)),
			slog.Uint64("expected_version", uint64(expected)))

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for alertsdb migrations: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
