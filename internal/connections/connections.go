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

// Package connections describes connection requests and the query that
// selects the ones an actor must act on first.
package connections

import (
	"context"
	"strconv"
)

// ActorID identifies the person alias a request is assigned to.
// Values <= 0 mean there is no current actor.
type ActorID int64

// NoActor is the anonymous actor.
const NoActor ActorID = 0

// Valid reports whether id names an actual actor.
func (id ActorID) Valid() bool {
	return id > 0
}

func (id ActorID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseActorID parses a decimal actor id. Empty, malformed and non-positive
// input all yield NoActor.
func ParseActorID(s string) ActorID {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return NoActor
	}
	return ActorID(v)
}

// State is the lifecycle state of a connection request.
type State int16

const (
	StateActive State = iota
	StateInactive
	StateFutureFollowUp
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateFutureFollowUp:
		return "future_follow_up"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// WorkItem is a snapshot of one connection request taken at query time.
type WorkItem struct {
	ID               int64   `json:"id"`
	OpportunityID    int64   `json:"opportunity_id"`
	State            State   `json:"state"`
	ConnectorActorID ActorID `json:"connector_actor_id"`
	StatusName       string  `json:"status_name,omitempty"`
	IsCriticalStatus bool    `json:"is_critical_status"`
}

// Querier returns the active, critical connection requests assigned to an
// actor. Implementations must be free of side effects.
type Querier interface {
	ListActiveCriticalRequests(ctx context.Context, actorID ActorID) ([]WorkItem, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, actorID ActorID) ([]WorkItem, error)

func (f QuerierFunc) ListActiveCriticalRequests(ctx context.Context, actorID ActorID) ([]WorkItem, error) {
	return f(ctx, actorID)
}
