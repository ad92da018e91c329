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

package alertcache

import (
	"context"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	redispreset "github.com/orlangure/gnomock/preset/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) string {
	t.Helper()
	container, err := gnomock.Start(redispreset.Preset(redispreset.WithVersion("7.2")))
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		_ = gnomock.Stop(container)
	})
	return container.DefaultAddress()
}

func TestRedis_Integration(t *testing.T) {
	ctx := context.Background()
	addr := startRedis(t)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	r := NewRedis(client, WithPrefix("test:"))

	_, ok, err := r.Get(ctx, ConnectionCountKey(42))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Put(ctx, ConnectionCountKey(42), 3, time.Second))
	v, ok, err := r.Get(ctx, ConnectionCountKey(42))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	raw, err := client.Get(ctx, "test:MyAlerts:ConnectionCount:ActorId:42").Int()
	require.NoError(t, err)
	assert.Equal(t, 3, raw)

	assert.Eventually(t, func() bool {
		_, ok, err := r.Get(ctx, ConnectionCountKey(42))
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestOpen_Redis(t *testing.T) {
	ctx := context.Background()
	addr := startRedis(t)

	cfg := DefaultConfig()
	cfg.Backend = BackendRedis
	cfg.Redis.Addr = addr

	c, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, c.Put(ctx, "k", 9, time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}
