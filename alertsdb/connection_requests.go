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

package alertsdb

import (
	"context"
	"fmt"

	"github.com/cardinalhq/myalerts/internal/connections"
)

const listActiveCriticalRequests = `
SELECT r.id,
       r.connection_opportunity_id,
       r.connection_state,
       r.connector_person_alias_id,
       s.name,
       s.is_critical
  FROM connection_requests r
  JOIN connection_statuses s ON s.id = r.connection_status_id
 WHERE r.connection_state = $1
   AND r.connector_person_alias_id = $2
   AND s.is_critical = true
 ORDER BY r.id
`

// ListActiveCriticalRequests implements connections.Querier.
func (q *Queries) ListActiveCriticalRequests(ctx context.Context, actorID connections.ActorID) ([]connections.WorkItem, error) {
	rows, err := q.db.Query(ctx, listActiveCriticalRequests, int16(connections.StateActive), int64(actorID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []connections.WorkItem
	for rows.Next() {
		var (
			i         connections.WorkItem
			state     int16
			connector int64
		)
		if err := rows.Scan(&i.ID, &i.OpportunityID, &state, &connector, &i.StatusName, &i.IsCriticalStatus); err != nil {
			return nil, fmt.Errorf("failed to scan connection request: %w", err)
		}
		i.State = connections.State(state)
		i.ConnectorActorID = connections.ActorID(connector)
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertConnectionStatus = `
INSERT INTO connection_statuses (name, is_critical)
VALUES ($1, $2)
RETURNING id
`

// InsertConnectionStatus creates a status and returns its id.
func (q *Queries) InsertConnectionStatus(ctx context.Context, name string, isCritical bool) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertConnectionStatus, name, isCritical).Scan(&id)
	return id, err
}

type InsertConnectionRequestParams struct {
	OpportunityID      int64
	ConnectorActorID   connections.ActorID
	State              connections.State
	ConnectionStatusID int64
}

const insertConnectionRequest = `
INSERT INTO connection_requests (connection_opportunity_id, connector_person_alias_id, connection_state, connection_status_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`

// InsertConnectionRequest creates a request and returns its id. A
// ConnectorActorID of connections.NoActor stores an unassigned request.
func (q *Queries) InsertConnectionRequest(ctx context.Context, arg InsertConnectionRequestParams) (int64, error) {
	var connector *int64
	if arg.ConnectorActorID.Valid() {
		v := int64(arg.ConnectorActorID)
		connector = &v
	}
	var id int64
	err := q.db.QueryRow(ctx, insertConnectionRequest,
		arg.OpportunityID, connector, int16(arg.State), arg.ConnectionStatusID,
	).Scan(&id)
	return id, err
}
