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

package alertcount

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	tierExternal = "external"
	tierRequest  = "request"
	tierQuery    = "query"
	tierFailed   = "failed"
)

var (
	tracer = otel.Tracer("github.com/cardinalhq/myalerts/internal/alertcount")

	resolutions     metric.Int64Counter
	listings        metric.Int64Counter
	cacheErrorCount metric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/cardinalhq/myalerts/internal/alertcount")

	var err error

	resolutions, err = meter.Int64Counter(
		"myalerts.connection_count.resolutions",
		metric.WithDescription("Critical connection count resolutions by the tier that answered"),
	)
	if err != nil {
		log.Fatalf("failed to create connection_count.resolutions counter: %v", err)
	}

	listings, err = meter.Int64Counter(
		"myalerts.connection_list.requests",
		metric.WithDescription("Critical connection list requests by the tier that answered"),
	)
	if err != nil {
		log.Fatalf("failed to create connection_list.requests counter: %v", err)
	}

	cacheErrorCount, err = meter.Int64Counter(
		"myalerts.cache.errors",
		metric.WithDescription("Alert cache operations that failed and were ignored"),
	)
	if err != nil {
		log.Fatalf("failed to create cache.errors counter: %v", err)
	}
}

func recordResolution(ctx context.Context, tier string) {
	resolutions.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))
}

func recordListing(ctx context.Context, tier string) {
	listings.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))
}

func recordCacheError(ctx context.Context, op string) {
	cacheErrorCount.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}
