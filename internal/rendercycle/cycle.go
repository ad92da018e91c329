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

// Package rendercycle holds state shared by the collaborators that take
// part in rendering one request.
//
// A Cycle is created when a request starts and dropped when it ends. It is
// bound to the actor the request is rendered for and is not safe for
// concurrent use.
package rendercycle

import (
	"context"

	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/idgen"
)

type Cycle struct {
	id    string
	actor connections.ActorID
	items map[string]any
}

// New starts a cycle rendered on behalf of actor. Pass connections.NoActor
// for anonymous requests.
func New(actor connections.ActorID) *Cycle {
	return &Cycle{
		id:    idgen.NextCycleID(),
		actor: actor,
		items: make(map[string]any),
	}
}

func (c *Cycle) ID() string {
	return c.id
}

// Actor returns the actor the cycle was created for.
func (c *Cycle) Actor() connections.ActorID {
	return c.actor
}

// Get returns the value stored under key during this cycle.
func (c *Cycle) Get(key string) (any, bool) {
	v, ok := c.items[key]
	return v, ok
}

// Set stores value under key for the rest of the cycle, replacing any
// previous value.
func (c *Cycle) Set(key string, value any) {
	c.items[key] = value
}

// Len returns the number of shared items.
func (c *Cycle) Len() int {
	return len(c.items)
}

type contextKey struct{}

var cycleKey = contextKey{}

// WithCycle returns a new context carrying c.
func WithCycle(ctx context.Context, c *Cycle) context.Context {
	return context.WithValue(ctx, cycleKey, c)
}

// FromContext returns the cycle stored in ctx, if any.
func FromContext(ctx context.Context) (*Cycle, bool) {
	c, ok := ctx.Value(cycleKey).(*Cycle)
	return c, ok && c != nil
}
