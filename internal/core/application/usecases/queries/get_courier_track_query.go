package queries

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

var (
	ErrGetCourierTrackQueryIsNotConstructed = errors.New(
		"GetCourierTrackQuery must be created via NewGetCourierTrackQuery constructor",
	)
	ErrTrackWindowIsInverted = errors.New("track window end must be after its start")
)

// GetCourierTrackQuery retrieves the GPS trace of one courier inside a time
// window, oldest ping first. The trace is the raw append-only ping history;
// it is never smoothed or deduplicated.
type GetCourierTrackQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	from      time.Time
	to        time.Time

	guard guard.ConstructorGuard
}

// NewGetCourierTrackQuery creates a query for a courier's GPS trace between
// from and to (inclusive on both ends).
func NewGetCourierTrackQuery(courierID kernel.UUID, from, to time.Time) (GetCourierTrackQuery, error) {
	query := GetCourierTrackQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCourierID(courierID),
		query.setWindow(from, to),
	); err != nil {
		return GetCourierTrackQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierTrackQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierTrackQueryIsNotConstructed)
}

// CourierID returns the courier whose trace is requested.
func (q GetCourierTrackQuery) CourierID() kernel.UUID {
	return q.courierID
}

// From returns the start of the requested window.
func (q GetCourierTrackQuery) From() time.Time {
	return q.from
}

// To returns the end of the requested window.
func (q GetCourierTrackQuery) To() time.Time {
	return q.to
}

func (q *GetCourierTrackQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	q.courierID = courierID
	return nil
}

func (q *GetCourierTrackQuery) setWindow(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return errs.NewValueIsRequiredError("track window")
	}
	if !to.After(from) {
		return ErrTrackWindowIsInverted
	}
	q.from = from
	q.to = to
	return nil
}

// GetCourierTrackQueryResponse represents one recorded GPS ping.
// AccuracyM, SpeedKmh and BearingDeg are nil when the device did not
// report them.
type GetCourierTrackQueryResponse struct {
	Point      kernel.GeoPoint
	AccuracyM  *float64
	SpeedKmh   *float64
	BearingDeg *float64
	RecordedAt time.Time
}
