package commands

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand represents one GPS fix pushed by a courier's
// device. Accuracy, speed and bearing are optional.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID  kernel.UUID
	point      kernel.GeoPoint
	accuracyM  *float64
	speedKmh   *float64
	bearingDeg *float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a command carrying a GPS fix.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID,
	latitude float64,
	longitude float64,
	accuracyM *float64,
	speedKmh *float64,
	bearingDeg *float64,
	recordedAt time.Time,
) (UpdateCourierLocationCommand, error) {
	command := UpdateCourierLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	point, pointErr := kernel.NewGeoPoint(latitude, longitude)

	if err := errors.Join(
		command.setCourierID(courierID),
		pointErr,
		command.setRecordedAt(recordedAt),
	); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	command.point = point
	command.accuracyM = accuracyM
	command.speedKmh = speedKmh
	command.bearingDeg = bearingDeg
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier's identifier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Point returns the reported coordinates.
func (c UpdateCourierLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// AccuracyM returns the fix accuracy in meters, nil when not reported.
func (c UpdateCourierLocationCommand) AccuracyM() *float64 {
	return c.accuracyM
}

// SpeedKmh returns the device speed, nil when not reported.
func (c UpdateCourierLocationCommand) SpeedKmh() *float64 {
	return c.speedKmh
}

// BearingDeg returns the heading in degrees, nil when not reported.
func (c UpdateCourierLocationCommand) BearingDeg() *float64 {
	return c.bearingDeg
}

// RecordedAt returns when the device took the fix.
func (c UpdateCourierLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}

func (c *UpdateCourierLocationCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *UpdateCourierLocationCommand) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	c.recordedAt = recordedAt
	return nil
}
