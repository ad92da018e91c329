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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/navigation"
)

// Store provides all functions to execute db queries and transactions.
type Store struct {
	*Queries
	connPool *pgxpool.Pool
}

var (
	_ connections.Querier        = (*Store)(nil)
	_ navigation.PreferenceStore = (*Store)(nil)
)

func NewStore(connPool *pgxpool.Pool) *Store {
	return &Store{
		Queries:  New(connPool),
		connPool: connPool,
	}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.connPool.Ping(ctx)
}

func (s *Store) Close() {
	s.connPool.Close()
}
