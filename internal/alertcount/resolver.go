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

// Package alertcount resolves how many critical connection requests are
// waiting on the current actor.
//
// Resolution consults three tiers in order: the process-wide TTL cache, the
// render cycle's shared list, and finally the connection request query.
// A hit in the process-wide cache short-circuits the other two.
package alertcount

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cardinalhq/myalerts/internal/alertcache"
	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/logctx"
	"github.com/cardinalhq/myalerts/internal/rendercycle"
)

// SharedCriticalKey is the render cycle key holding the actor's active
// critical connection requests.
const SharedCriticalKey = "ActiveCriticalConnections"

// DefaultCacheDurationSeconds is used when no cache duration is configured.
const DefaultCacheDurationSeconds = 60

// TTLConfig controls the process-wide cache tier.
type TTLConfig struct {
	// DurationSeconds is how long a computed count is reused. 0 disables
	// the tier; negative values are treated as 0.
	DurationSeconds int `mapstructure:"cache_duration_seconds"`
}

func (t TTLConfig) Enabled() bool {
	return t.DurationSeconds > 0
}

func (t TTLConfig) Duration() time.Duration {
	if !t.Enabled() {
		return 0
	}
	return time.Duration(t.DurationSeconds) * time.Second
}

// Resolver computes critical connection counts. It is safe for concurrent
// use; the cycles passed to it are not.
type Resolver struct {
	cache   alertcache.Cache
	querier connections.Querier
}

// NewResolver creates a Resolver. cache may be nil, in which case the
// process-wide tier is skipped regardless of the TTL.
func NewResolver(cache alertcache.Cache, querier connections.Querier) *Resolver {
	return &Resolver{
		cache:   cache,
		querier: querier,
	}
}

// Resolve returns the number of active, critical connection requests
// assigned to actorID. ok is false when there is no actor; nothing is read
// or written in that case. Query failures are returned and never cached.
func (r *Resolver) Resolve(ctx context.Context, cycle *rendercycle.Cycle, actorID connections.ActorID, ttl TTLConfig) (count int, ok bool, err error) {
	if !actorID.Valid() {
		return 0, false, nil
	}

	ctx, span := tracer.Start(ctx, "alertcount.Resolve", trace.WithAttributes(
		attribute.Int64("actor_id", int64(actorID)),
		attribute.Int("ttl_seconds", ttl.DurationSeconds),
	))
	defer span.End()

	key := alertcache.ConnectionCountKey(actorID)
	useCache := ttl.Enabled() && r.cache != nil

	if useCache {
		if cached, hit := r.cacheGet(ctx, key); hit {
			recordResolution(ctx, tierExternal)
			span.SetAttributes(attribute.String("tier", tierExternal))
			return cached, true, nil
		}
	}

	items, tier, err := r.criticalRequests(ctx, cycle, actorID)
	if err != nil {
		recordResolution(ctx, tierFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, false, err
	}
	count = len(items)
	recordResolution(ctx, tier)
	span.SetAttributes(attribute.String("tier", tier), attribute.Int("count", count))

	if useCache {
		r.cachePut(ctx, key, count, ttl.Duration())
	}

	logctx.FromContext(ctx).Debug("Resolved critical connection count",
		slog.Int64("actor_id", int64(actorID)),
		slog.String("tier", tier),
		slog.Int("count", count))

	return count, true, nil
}

// CriticalRequests returns the actor's active critical connection requests,
// reusing the list already loaded in cycle if there is one. Other consumers
// in the same render cycle use it so the query runs at most once per cycle.
func (r *Resolver) CriticalRequests(ctx context.Context, cycle *rendercycle.Cycle, actorID connections.ActorID) ([]connections.WorkItem, error) {
	if !actorID.Valid() {
		return nil, nil
	}
	items, tier, err := r.criticalRequests(ctx, cycle, actorID)
	if err != nil {
		return nil, err
	}
	recordListing(ctx, tier)
	return items, nil
}

// criticalRequests consults the cycle before the querier. The shared key is
// not actor qualified, so the cycle is only used when it was created for
// actorID; otherwise the query runs and its result is not shared.
func (r *Resolver) criticalRequests(ctx context.Context, cycle *rendercycle.Cycle, actorID connections.ActorID) ([]connections.WorkItem, string, error) {
	shared := cycle != nil && cycle.Actor() == actorID
	if cycle != nil && !shared {
		logctx.FromContext(ctx).Warn("Render cycle belongs to another actor, not sharing critical requests",
			slog.String("cycle_id", cycle.ID()),
			slog.Int64("cycle_actor_id", int64(cycle.Actor())),
			slog.Int64("actor_id", int64(actorID)))
	}

	if shared {
		if v, found := cycle.Get(SharedCriticalKey); found {
			if items, isList := v.([]connections.WorkItem); isList {
				return items, tierRequest, nil
			}
		}
	}

	items, err := r.querier.ListActiveCriticalRequests(ctx, actorID)
	if err != nil {
		return nil, tierFailed, fmt.Errorf("failed to list critical connection requests for actor %d: %w", actorID, err)
	}
	if items == nil {
		items = []connections.WorkItem{}
	}
	if shared {
		cycle.Set(SharedCriticalKey, items)
	}
	return items, tierQuery, nil
}

func (r *Resolver) cacheGet(ctx context.Context, key string) (int, bool) {
	v, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		recordCacheError(ctx, "get")
		logctx.FromContext(ctx).Warn("Alert cache read failed, treating as miss",
			slog.String("key", key), slog.Any("error", err))
		return 0, false
	}
	return v, hit
}

func (r *Resolver) cachePut(ctx context.Context, key string, count int, ttl time.Duration) {
	if err := r.cache.Put(ctx, key, count, ttl); err != nil {
		recordCacheError(ctx, "put")
		logctx.FromContext(ctx).Warn("Alert cache write failed, ignoring",
			slog.String("key", key), slog.Any("error", err))
	}
}
