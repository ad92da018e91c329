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

package alertapi

import (
	"log/slog"
	"net/http"

	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/idgen"
	"github.com/cardinalhq/myalerts/internal/logctx"
	"github.com/cardinalhq/myalerts/internal/rendercycle"
)

const (
	// ActorHeader carries the authenticated person alias id, set by the
	// fronting auth proxy.
	ActorHeader     = "X-Actor-Id"
	RequestIDHeader = "X-Request-Id"
)

// renderCycleMiddleware starts a render cycle for the request's actor and
// attaches it, with a request scoped logger, to the request context.
func (s *Server) renderCycleMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = idgen.NewRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)

		actorID := connections.ParseActorID(r.Header.Get(ActorHeader))
		cycle := rendercycle.New(actorID)

		ctx := rendercycle.WithCycle(r.Context(), cycle)
		ctx = logctx.With(ctx,
			slog.String("request_id", requestID),
			slog.String("cycle_id", cycle.ID()),
			slog.Int64("actor_id", int64(actorID)),
		)
		next(w, r.WithContext(ctx))
	}
}

// cycleFromRequest returns the request's render cycle. Handlers are only
// reached through renderCycleMiddleware, but an anonymous cycle is returned
// if one is missing.
func cycleFromRequest(r *http.Request) *rendercycle.Cycle {
	if cycle, ok := rendercycle.FromContext(r.Context()); ok {
		return cycle
	}
	return rendercycle.New(connections.NoActor)
}
