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

// Package alertcache is the process-wide cache for per-actor alert counts.
//
// Entries expire a fixed time after they are written; reading an entry
// does not extend it. Concurrent writers for the same key are resolved by
// last write wins.
package alertcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cardinalhq/myalerts/internal/connections"
)

const (
	// Feature is the key namespace shared by all alert counts.
	Feature = "MyAlerts"
	// ConnectionCountMetric names the critical connection request count.
	ConnectionCountMetric = "ConnectionCount"
)

// Cache stores integer counts with a per-entry TTL.
type Cache interface {
	// Get returns the value stored under key. Expired entries are reported
	// as absent.
	Get(ctx context.Context, key string) (int, bool, error)
	// Put stores value under key for ttl. A ttl <= 0 leaves the cache untouched.
	Put(ctx context.Context, key string, value int, ttl time.Duration) error
}

var ErrUnknownBackend = errors.New("unknown alert cache backend")

// Key builds the cache key for one metric of one actor, for example
// "MyAlerts:ConnectionCount:ActorId:42".
func Key(feature, metric string, actorID connections.ActorID) string {
	return fmt.Sprintf("%s:%s:ActorId:%d", feature, metric, int64(actorID))
}

// ConnectionCountKey is the key of the critical connection request count.
func ConnectionCountKey(actorID connections.ActorID) string {
	return Key(Feature, ConnectionCountMetric, actorID)
}
