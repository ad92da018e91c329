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

// Package navigation handles the click-through from the alert badge to the
// connection request listing page.
package navigation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/logctx"
)

const (
	// ToggleKey makes the listing page open with its filter panel toggled.
	ToggleKey = "MyConnectionOpportunities_Toggle"
	// SelectedOpportunityKey is cleared so the listing shows every opportunity.
	SelectedOpportunityKey = "MyConnectionOpportunities_SelectedOpportunity"

	DefaultListingPage = "/page/530860ED-BC73-4A43-8E7C-69533EF2B6AD"
)

// PreferenceStore persists per-actor user preferences. A nil value clears
// the preference.
type PreferenceStore interface {
	SetUserPreference(ctx context.Context, actorID connections.ActorID, key string, value *string) error
}

type Navigator struct {
	prefs       PreferenceStore
	listingPage string
}

func New(prefs PreferenceStore, listingPage string) *Navigator {
	if listingPage == "" {
		listingPage = DefaultListingPage
	}
	return &Navigator{
		prefs:       prefs,
		listingPage: listingPage,
	}
}

// ListingPage returns the navigation destination.
func (n *Navigator) ListingPage() string {
	return n.listingPage
}

// Open prepares the listing page for actorID and returns where to send the
// user. Anonymous actors are sent there without any preference changes.
func (n *Navigator) Open(ctx context.Context, actorID connections.ActorID) (string, error) {
	if !actorID.Valid() {
		return n.listingPage, nil
	}

	toggle := "true"
	if err := n.prefs.SetUserPreference(ctx, actorID, ToggleKey, &toggle); err != nil {
		return "", fmt.Errorf("failed to set %s: %w", ToggleKey, err)
	}
	if err := n.prefs.SetUserPreference(ctx, actorID, SelectedOpportunityKey, nil); err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", SelectedOpportunityKey, err)
	}

	logctx.FromContext(ctx).Debug("Prepared connection listing page",
		slog.Int64("actor_id", int64(actorID)),
		slog.String("destination", n.listingPage))
	return n.listingPage, nil
}
