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
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is an in-process Cache. Expired entries are never returned and are
// swept by a background goroutine until Close is called.
type Memory struct {
	cache *ttlcache.Cache[string, int]
}

var _ Cache = (*Memory)(nil)

// NewMemory creates a Memory cache and starts its expiry loop.
func NewMemory() *Memory {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, int](),
	)
	go cache.Start()
	return &Memory{cache: cache}
}

// Close stops the expiry loop.
func (m *Memory) Close() {
	m.cache.Stop()
}

func (m *Memory) Get(_ context.Context, key string) (int, bool, error) {
	item := m.cache.Get(key)
	if item == nil {
		return 0, false, nil
	}
	return item.Value(), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value int, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.cache.Set(key, value, ttl)
	return nil
}

// Len returns the number of entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	return m.cache.Len()
}
