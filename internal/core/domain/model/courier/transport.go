package courier

import (
	"crm/internal/pkg/errs"
)

// Transport identifies the vehicle a courier uses for deliveries. The
// transport drives two dispatch decisions: average travel speed (used to rank
// candidates by estimated arrival time) and carrying capacity (used to filter
// out couriers that cannot fit the order).
type Transport int

const (
	// TransportUnknown is the zero value and is never valid.
	TransportUnknown Transport = iota
	// TransportBike is a bicycle courier.
	TransportBike
	// TransportMotorcycle is a motorcycle courier.
	TransportMotorcycle
	// TransportCar is a passenger car courier.
	TransportCar
	// TransportVan is a cargo van courier.
	TransportVan
)

const (
	transportUnknownName    = "unknown"
	transportBikeName       = "bike"
	transportMotorcycleName = "motorcycle"
	transportCarName        = "car"
	transportVanName        = "van"
)

// TransportFromString parses a transport name as stored in the database and
// exposed over the API.
func TransportFromString(name string) (Transport, error) {
	switch name {
	case transportBikeName:
		return TransportBike, nil
	case transportMotorcycleName:
		return TransportMotorcycle, nil
	case transportCarName:
		return TransportCar, nil
	case transportVanName:
		return TransportVan, nil
	default:
		return TransportUnknown, errs.NewValueIsInvalidError("transport")
	}
}

// Validate checks that the transport is one of the known vehicle types.
func (t Transport) Validate() error {
	switch t {
	case TransportBike, TransportMotorcycle, TransportCar, TransportVan:
		return nil
	case TransportUnknown:
		return errs.NewValueIsRequiredError("transport")
	default:
		return errs.NewValueIsInvalidError("transport")
	}
}

// String returns the canonical name of the transport.
func (t Transport) String() string {
	switch t {
	case TransportBike:
		return transportBikeName
	case TransportMotorcycle:
		return transportMotorcycleName
	case TransportCar:
		return transportCarName
	case TransportVan:
		return transportVanName
	default:
		return transportUnknownName
	}
}

// SpeedKmh returns the average urban travel speed assumed for the transport.
// The values feed travel-time estimates when no routing provider is
// reachable and the dispatch ranking of candidate couriers.
func (t Transport) SpeedKmh() float64 {
	switch t {
	case TransportBike:
		return 15
	case TransportMotorcycle:
		return 35
	case TransportCar:
		return 40
	case TransportVan:
		return 35
	default:
		return 0
	}
}

// Capacity returns how many order units the transport can carry at once.
func (t Transport) Capacity() int {
	switch t {
	case TransportBike:
		return 5
	case TransportMotorcycle:
		return 10
	case TransportCar:
		return 20
	case TransportVan:
		return 40
	default:
		return 0
	}
}
