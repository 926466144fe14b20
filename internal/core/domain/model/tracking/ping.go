// Package tracking holds the append-only GPS history of couriers. Pings are
// immutable facts: they are created, stored and queried, never updated.
package tracking

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// ErrPingIsNotConstructed is returned when using an improperly initialized Ping.
var ErrPingIsNotConstructed = errors.New("Ping must be created via NewPing constructor")

// Ping is a single GPS fix reported by a courier's device. Accuracy, speed
// and bearing are optional because not every device reports them.
type Ping struct {
	id         kernel.UUID
	courierID  kernel.UUID
	point      kernel.GeoPoint
	accuracyM  *float64
	speedKmh   *float64
	bearingDeg *float64
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewPing creates a GPS fix.
func NewPing(
	id kernel.UUID,
	courierID kernel.UUID,
	point kernel.GeoPoint,
	accuracyM *float64,
	speedKmh *float64,
	bearingDeg *float64,
	recordedAt time.Time,
) (*Ping, error) {
	ping := &Ping{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ping.setID(id),
		ping.setCourierID(courierID),
		ping.setPoint(point),
		ping.setRecordedAt(recordedAt),
		validateOptionalRange("accuracyM", accuracyM, 0, 10000),
		validateOptionalRange("speedKmh", speedKmh, 0, 300),
		validateOptionalRange("bearingDeg", bearingDeg, 0, 360),
	); err != nil {
		return nil, err
	}

	ping.accuracyM = accuracyM
	ping.speedKmh = speedKmh
	ping.bearingDeg = bearingDeg
	return ping, nil
}

// RestorePing reconstructs a GPS fix from persistence.
func RestorePing(
	id kernel.UUID,
	courierID kernel.UUID,
	point kernel.GeoPoint,
	accuracyM *float64,
	speedKmh *float64,
	bearingDeg *float64,
	recordedAt time.Time,
) (*Ping, error) {
	return NewPing(id, courierID, point, accuracyM, speedKmh, bearingDeg, recordedAt)
}

// Validate checks that the ping was created through a constructor.
func (p *Ping) Validate() error {
	if p == nil {
		return ErrPingIsNotConstructed
	}
	return p.guard.Validate(ErrPingIsNotConstructed)
}

// ID returns the ping's unique identifier.
func (p *Ping) ID() kernel.UUID {
	return p.id
}

// CourierID returns the reporting courier's identifier.
func (p *Ping) CourierID() kernel.UUID {
	return p.courierID
}

// Point returns the reported coordinates.
func (p *Ping) Point() kernel.GeoPoint {
	return p.point
}

// AccuracyM returns the fix accuracy in meters, nil when not reported.
func (p *Ping) AccuracyM() *float64 {
	return p.accuracyM
}

// SpeedKmh returns the device speed, nil when not reported.
func (p *Ping) SpeedKmh() *float64 {
	return p.speedKmh
}

// BearingDeg returns the heading in degrees, nil when not reported.
func (p *Ping) BearingDeg() *float64 {
	return p.bearingDeg
}

// RecordedAt returns when the device took the fix.
func (p *Ping) RecordedAt() time.Time {
	return p.recordedAt
}

func (p *Ping) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Ping) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	p.courierID = courierID
	return nil
}

func (p *Ping) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.point = point
	return nil
}

func (p *Ping) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	p.recordedAt = recordedAt
	return nil
}

func validateOptionalRange(name string, value *float64, minValue, maxValue float64) error {
	if value == nil {
		return nil
	}
	if *value < minValue || *value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, *value, minValue, maxValue)
	}
	return nil
}
