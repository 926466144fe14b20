package commands

import (
	"context"
	"errors"
	"time"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/route"
	"crm/internal/core/domain/services"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

var (
	// ErrCourierForRouteNotFound is returned when planning for an
	// unregistered courier.
	ErrCourierForRouteNotFound = errors.New("courier not found")
	// ErrCourierLocationUnknown is returned when the courier has never
	// reported a position, so there is no route origin.
	ErrCourierLocationUnknown = errors.New("courier location is unknown")
	// ErrNothingToPlan is returned when the courier has no geocoded assigned
	// orders to visit.
	ErrNothingToPlan = errors.New("no orders to plan a route for")
)

// PlanRouteCommandHandler builds a multi-stop route over the courier's
// assigned orders. Stops are sequenced by the nearest-neighbor planner;
// distances and travel times are then refined leg by leg through the routing
// provider, falling back to the planner's straight-line estimates when the
// provider is unreachable. Planning replaces the courier's previous
// unfinished route.
type PlanRouteCommandHandler struct {
	uowFactory    RoutePlanningUoWFactory
	routeProvider ports.RouteProvider
}

// NewPlanRouteCommandHandler creates a handler for route planning.
func NewPlanRouteCommandHandler(
	uowFactory RoutePlanningUoWFactory,
	routeProvider ports.RouteProvider,
) PlanRouteCommandHandler {
	return PlanRouteCommandHandler{
		uowFactory:    uowFactory,
		routeProvider: routeProvider,
	}
}

// Handle processes the route planning command.
func (h PlanRouteCommandHandler) Handle(ctx context.Context, cmd PlanRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCourierForRouteNotFound
	}
	if err != nil {
		return err
	}
	if aggregate.Location() == nil {
		return ErrCourierLocationUnknown
	}

	orders, err := uow.OrderRepository().GetAllNewForCourierPlanning(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	points := make([]kernel.GeoPoint, 0, len(orders))
	orderIDs := make([]kernel.UUID, 0, len(orders))
	for _, ord := range orders {
		if ord.Location() == nil {
			continue
		}
		points = append(points, *ord.Location())
		orderIDs = append(orderIDs, ord.ID())
	}
	if len(points) == 0 {
		return ErrNothingToPlan
	}

	plan, err := services.NewRoutePlanner().PlanRoute(*aggregate.Location(), points, aggregate.Transport())
	if err != nil {
		return err
	}

	distanceKm, duration, geometry := h.refinePlan(ctx, *aggregate.Location(), points, plan, aggregate.Transport())

	now := time.Now()
	stops := make([]route.Stop, 0, len(plan.Legs))
	for i, leg := range plan.Legs {
		eta := now.Add(leg.ETAOffset)
		stop, stopErr := route.NewStop(orderIDs[leg.PointIndex], i, points[leg.PointIndex], &eta)
		if stopErr != nil {
			return stopErr
		}
		stops = append(stops, stop)
	}

	newRoute, err := route.NewRoute(cmd.RouteID(), cmd.CourierID(), cmd.Name(),
		stops, distanceKm, duration, geometry, now)
	if err != nil {
		return err
	}

	routeRepo := uow.RouteRepository()

	previous, err := routeRepo.GetActiveByCourierID(ctx, cmd.CourierID())
	if err == nil {
		if err = previous.Cancel(); err != nil {
			return err
		}
		if err = routeRepo.Update(ctx, previous); err != nil {
			return err
		}
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = routeRepo.Add(ctx, newRoute); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// refinePlan asks the routing provider for road-network legs along the
// planned sequence. Any provider failure keeps the straight-line numbers.
func (h PlanRouteCommandHandler) refinePlan(
	ctx context.Context,
	origin kernel.GeoPoint,
	points []kernel.GeoPoint,
	plan services.Plan,
	transport courier.Transport,
) (float64, time.Duration, []kernel.GeoPoint) {
	var (
		distanceKm float64
		driving    time.Duration
		geometry   []kernel.GeoPoint
	)

	profile := routingProfile(transport)
	from := origin
	for _, leg := range plan.Legs {
		to := points[leg.PointIndex]
		estimate, err := h.routeProvider.EstimateRoute(ctx, from, to, profile)
		if err != nil {
			return plan.DistanceKm, plan.Duration, nil
		}

		distanceKm += estimate.DistanceKm
		driving += estimate.Duration
		geometry = append(geometry, estimate.Geometry...)
		from = to
	}

	return distanceKm, driving + time.Duration(len(plan.Legs))*services.StopServiceTime, geometry
}

// routingProfile maps a transport to the routing provider's profile name.
func routingProfile(transport courier.Transport) string {
	switch transport {
	case courier.TransportBike:
		return "cycling-regular"
	case courier.TransportMotorcycle, courier.TransportCar, courier.TransportVan:
		return "driving-car"
	default:
		return "driving-car"
	}
}
