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
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardinalhq/myalerts/internal/badge"
	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/logctx"
)

// ListResponse is the JSON form of the actor's connection alerts.
type ListResponse struct {
	Count int                    `json:"count"`
	Items []connections.WorkItem `json:"items"`
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cycle := cycleFromRequest(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	// Anonymous actors still get the link, just without a count.
	count, _, err := s.resolver.Resolve(ctx, cycle, cycle.Actor(), s.ttl)
	if err != nil {
		logctx.FromContext(ctx).Error("Failed to resolve connection alert count", slog.Any("error", err))
		status, code := statusAndCodeForError(err)
		writeAPIError(w, status, code, "failed to resolve connection alerts")
		return
	}

	html, err := badge.NewLink(OpenPath, count).HTML()
	if err != nil {
		logctx.FromContext(ctx).Error("Failed to render connection alert badge", slog.Any("error", err))
		writeAPIError(w, http.StatusInternalServerError, ErrInternalError, "failed to render badge")
		return
	}
	_, _ = w.Write([]byte(html))
}

// handleList reports the items loaded in this cycle and counts them, so the
// count always matches the items even while the external tier holds an older
// value.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cycle := cycleFromRequest(r)
	actorID := cycle.Actor()

	if !actorID.Valid() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	items, err := s.resolver.CriticalRequests(ctx, cycle, actorID)
	if err != nil {
		logctx.FromContext(ctx).Error("Failed to list critical connection requests", slog.Any("error", err))
		status, code := statusAndCodeForError(err)
		writeAPIError(w, status, code, "failed to list connection alerts")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListResponse{Count: len(items), Items: items})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cycle := cycleFromRequest(r)

	dest, err := s.nav.Open(ctx, cycle.Actor())
	if err != nil {
		logctx.FromContext(ctx).Error("Failed to prepare connection listing page", slog.Any("error", err))
		status, code := statusAndCodeForError(err)
		writeAPIError(w, status, code, "failed to open connection listing")
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

type healthResponse struct {
	Healthy bool `json:"healthy"`
}

func writeHealth(w http.ResponseWriter, healthy bool) {
	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(healthResponse{Healthy: healthy})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, s.healthy.Load())
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !s.healthy.Load() {
		writeHealth(w, false)
		return
	}
	for _, p := range s.pingers {
		if err := p.Ping(r.Context()); err != nil {
			slog.Warn("Readiness check failed", slog.Any("error", err))
			writeHealth(w, false)
			return
		}
	}
	writeHealth(w, true)
}
