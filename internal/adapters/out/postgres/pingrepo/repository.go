package pingrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/tracking"
)

// GormPingRepository implements PingRepository using GORM. The track is
// append-only, so no tracker is needed: pings carry no lifecycle.
type GormPingRepository struct {
	db *gorm.DB
}

// NewGormPingRepository creates a new GORM ping repository.
func NewGormPingRepository(db *gorm.DB) *GormPingRepository {
	return &GormPingRepository{db: db}
}

// Add appends one GPS fix to the courier's track.
func (r *GormPingRepository) Add(ctx context.Context, ping *tracking.Ping) error {
	if err := ping.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ping)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetTrack retrieves the courier's fixes within the window, oldest first.
func (r *GormPingRepository) GetTrack(
	ctx context.Context,
	courierID kernel.UUID,
	from, to time.Time,
) ([]*tracking.Ping, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PingDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Where("recorded_at BETWEEN ? AND ?", from, to).
		Order("recorded_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	track := make([]*tracking.Ping, 0, len(dtos))
	for _, dto := range dtos {
		ping, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		track = append(track, ping)
	}

	return track, nil
}
