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
	mapset "github.com/deckarep/golang-set/v2"
)

// IsCritical reports whether item is an active request in a critical status
// assigned to actorID.
func IsCritical(item WorkItem, actorID ActorID) bool {
	return actorID.Valid() &&
		item.State == StateActive &&
		item.ConnectorActorID == actorID &&
		item.IsCriticalStatus
}

// FilterCritical returns the items that satisfy IsCritical, keeping the
// first occurrence of each request id and the input order.
func FilterCritical(items []WorkItem, actorID ActorID) []WorkItem {
	seen := mapset.NewThreadUnsafeSet[int64]()
	out := make([]WorkItem, 0, len(items))
	for _, item := range items {
		if !IsCritical(item, actorID) {
			continue
		}
		if !seen.Add(item.ID) {
			continue
		}
		out = append(out, item)
	}
	return out
}
