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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActorID(t *testing.T) {
	tests := []struct {
		in   string
		want ActorID
	}{
		{"42", 42},
		{"", NoActor},
		{"abc", NoActor},
		{"0", NoActor},
		{"-7", NoActor},
		{"9223372036854775807", ActorID(9223372036854775807)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseActorID(tt.in))
		})
	}
}

func TestActorIDValid(t *testing.T) {
	assert.False(t, NoActor.Valid())
	assert.False(t, ActorID(-1).Valid())
	assert.True(t, ActorID(1).Valid())
	assert.Equal(t, "42", ActorID(42).String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "inactive", StateInactive.String())
	assert.Equal(t, "future_follow_up", StateFutureFollowUp.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestIsCritical(t *testing.T) {
	base := WorkItem{ID: 1, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true}

	tests := []struct {
		name  string
		item  func(WorkItem) WorkItem
		actor ActorID
		want  bool
	}{
		{"qualifying", func(w WorkItem) WorkItem { return w }, 42, true},
		{"other actor", func(w WorkItem) WorkItem { return w }, 43, false},
		{"no actor", func(w WorkItem) WorkItem { w.ConnectorActorID = NoActor; return w }, NoActor, false},
		{"inactive", func(w WorkItem) WorkItem { w.State = StateInactive; return w }, 42, false},
		{"connected", func(w WorkItem) WorkItem { w.State = StateConnected; return w }, 42, false},
		{"not critical", func(w WorkItem) WorkItem { w.IsCriticalStatus = false; return w }, 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCritical(tt.item(base), tt.actor))
		})
	}
}

func TestFilterCritical(t *testing.T) {
	items := []WorkItem{
		{ID: 3, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true},
		{ID: 1, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true},
		{ID: 3, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true},
		{ID: 4, State: StateFutureFollowUp, ConnectorActorID: 42, IsCriticalStatus: true},
		{ID: 5, State: StateActive, ConnectorActorID: 7, IsCriticalStatus: true},
		{ID: 6, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: false},
		{ID: 2, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true},
	}

	got := FilterCritical(items, 42)
	ids := make([]int64, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)

	assert.Empty(t, FilterCritical(items, NoActor))
	assert.Empty(t, FilterCritical(nil, 42))
}

func TestMemorySource(t *testing.T) {
	ctx := context.Background()
	src := NewMemorySource(
		WorkItem{ID: 1, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true},
		WorkItem{ID: 2, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: false},
	)
	src.Add(WorkItem{ID: 3, State: StateActive, ConnectorActorID: 42, IsCriticalStatus: true})

	items, err := src.ListActiveCriticalRequests(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	boom := errors.New("database unavailable")
	src.SetError(boom)
	_, err = src.ListActiveCriticalRequests(ctx, 42)
	assert.ErrorIs(t, err, boom)

	src.SetError(nil)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.ListActiveCriticalRequests(cancelled, 42)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuerierFunc(t *testing.T) {
	var got ActorID
	q := QuerierFunc(func(_ context.Context, actorID ActorID) ([]WorkItem, error) {
		got = actorID
		return []WorkItem{{ID: 9}}, nil
	})
	items, err := q.ListActiveCriticalRequests(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, ActorID(5), got)
	assert.Len(t, items, 1)
}
