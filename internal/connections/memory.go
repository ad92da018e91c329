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

package connections

import (
	"context"
	"sync"
)

// MemorySource is a Querier over an in-memory set of requests.
// It is used by the count command's --fixture mode and by tests.
type MemorySource struct {
	mu    sync.RWMutex
	items []WorkItem
	err   error
}

func NewMemorySource(items ...WorkItem) *MemorySource {
	return &MemorySource{items: append([]WorkItem(nil), items...)}
}

// Add appends requests to the source.
func (m *MemorySource) Add(items ...WorkItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

// SetError makes every subsequent query fail with err. A nil err clears it.
func (m *MemorySource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemorySource) ListActiveCriticalRequests(ctx context.Context, actorID ActorID) ([]WorkItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return FilterCritical(m.items, actorID), nil
}
