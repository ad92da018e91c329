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
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/cardinalhq/myalerts/internal/connections"
)

const upsertUserPreference = `
INSERT INTO user_preferences (person_alias_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (person_alias_id, key)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`

// SetUserPreference stores value for the actor; a nil value clears it.
func (q *Queries) SetUserPreference(ctx context.Context, actorID connections.ActorID, key string, value *string) error {
	_, err := q.db.Exec(ctx, upsertUserPreference, int64(actorID), key, value)
	return err
}

const getUserPreference = `
SELECT value FROM user_preferences WHERE person_alias_id = $1 AND key = $2
`

// GetUserPreference returns the stored value. found is false when the
// preference was never set; a cleared preference is found with a nil value.
func (q *Queries) GetUserPreference(ctx context.Context, actorID connections.ActorID, key string) (value *string, found bool, err error) {
	err = q.db.QueryRow(ctx, getUserPreference, int64(actorID), key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
