// Package rediscache keeps the latest courier positions in Redis for cheap
// live reads. The database ping table stays the source of truth; entries
// here expire on their own.
package rediscache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

const positionTTL = 10 * time.Minute

// LocationCache stores courier positions as Redis hashes keyed
// "courier:<id>".
type LocationCache struct {
	rdb *redis.Client
}

// NewLocationCache creates a cache over the given Redis client.
func NewLocationCache(rdb *redis.Client) *LocationCache {
	return &LocationCache{rdb: rdb}
}

// SetPosition stores the courier's latest position with a TTL.
func (c *LocationCache) SetPosition(
	ctx context.Context,
	courierID kernel.UUID,
	position ports.CourierPosition,
) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	key := positionKey(courierID)
	if err := c.rdb.HSet(ctx, key, map[string]any{
		"lat":        position.Point.Latitude(),
		"lon":        position.Point.Longitude(),
		"updated_at": position.RecordedAt.UTC().Format(time.RFC3339Nano),
	}).Err(); err != nil {
		return err
	}

	return c.rdb.Expire(ctx, key, positionTTL).Err()
}

// GetPosition retrieves the courier's latest position. Returns
// errs.ObjectNotFoundError when expired or never stored.
func (c *LocationCache) GetPosition(ctx context.Context, courierID kernel.UUID) (ports.CourierPosition, error) {
	if err := courierID.Validate(); err != nil {
		return ports.CourierPosition{}, err
	}

	fields, err := c.rdb.HGetAll(ctx, positionKey(courierID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.CourierPosition{}, err
	}
	if len(fields) == 0 {
		return ports.CourierPosition{}, errs.NewObjectNotFoundError("courierID", courierID.String())
	}

	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return ports.CourierPosition{}, errs.NewValueIsInvalidErrorWithCause("lat", err)
	}
	lon, err := strconv.ParseFloat(fields["lon"], 64)
	if err != nil {
		return ports.CourierPosition{}, errs.NewValueIsInvalidErrorWithCause("lon", err)
	}
	recordedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return ports.CourierPosition{}, errs.NewValueIsInvalidErrorWithCause("updated_at", err)
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return ports.CourierPosition{}, err
	}

	return ports.CourierPosition{Point: point, RecordedAt: recordedAt}, nil
}

func positionKey(courierID kernel.UUID) string {
	return "courier:" + courierID.String()
}

var _ ports.LocationCache = (*LocationCache)(nil)
