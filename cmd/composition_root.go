package cmd

import (
	"log/slog"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"crm/internal/adapters/out/nominatim"
	"crm/internal/adapters/out/ollama"
	"crm/internal/adapters/out/postgres"
	"crm/internal/adapters/out/rediscache"
	"crm/internal/adapters/out/routing"
	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/application/usecases/queries"
	"crm/internal/core/ports"
)

// CompositionRoot wires adapters into use case handlers. Every handler gets
// a unit of work factory scoped to the repositories it needs, so commands
// cannot reach outside their transaction boundary.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	geocoder      ports.Geocoder
	routeProvider ports.RouteProvider
	chatProvider  ports.ChatProvider
	publisher     ports.NotificationPublisher
	locationCache ports.LocationCache
}

// NewCompositionRoot builds the object graph from configuration and the
// already-open infrastructure connections.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.NotificationPublisher,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   nominatim.NewGeocoder(configs.NominatimBaseURL),
		routeProvider: routing.NewProvider(routing.Config{
			Enabled:     configs.RoutingEnabled,
			ORSBaseURL:  configs.ORSBaseURL,
			ORSAPIKey:   configs.ORSAPIKey,
			OSRMBaseURL: configs.OSRMBaseURL,
		}, logger),
		chatProvider:  ollama.NewChatClient(configs.OllamaBaseURL, configs.OllamaModel),
		publisher:     publisher,
		locationCache: rediscache.NewLocationCache(redisClient),
	}
}

// Geocoder exposes the address lookup gateway to the HTTP layer.
func (c *CompositionRoot) Geocoder() ports.Geocoder {
	return c.geocoder
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	var f commands.ClientUoWFactory = FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateClientCommandHandler(f, c.geocoder)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderIntakeUoWFactory = FuncOrderIntakeUoWFactory(func() commands.OrderIntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.geocoder, c.publisher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderProgressUoWFactory = FuncOrderProgressUoWFactory(func() commands.OrderProgressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.geocoder, c.publisher)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f, c.locationCache)
}

func (c *CompositionRoot) CreateProcessPaymentWebhookCommandHandler() commands.ProcessPaymentWebhookCommandHandler {
	return commands.NewProcessPaymentWebhookCommandHandler(c.paymentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateProcessCashPaymentCommandHandler() commands.ProcessCashPaymentCommandHandler {
	return commands.NewProcessCashPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	return commands.NewRefundPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreatePlanRouteCommandHandler() commands.PlanRouteCommandHandler {
	var f commands.RoutePlanningUoWFactory = FuncRoutePlanningUoWFactory(func() commands.RoutePlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanRouteCommandHandler(f, c.routeProvider)
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	return commands.NewCompleteRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateSupportChatCommandHandler() commands.SupportChatCommandHandler {
	var f commands.SupportUoWFactory = FuncSupportUoWFactory(func() commands.SupportUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSupportChatCommandHandler(f, c.chatProvider)
}

func (c *CompositionRoot) CreateSweepStaleCouriersCommandHandler() commands.SweepStaleCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepStaleCouriersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB, c.locationCache)
}

func (c *CompositionRoot) CreateGetUndeliveredOrdersQueryHandler() queries.GetUndeliveredOrdersQueryHandler {
	return queries.NewGetUndeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierTrackQueryHandler() queries.GetCourierTrackQueryHandler {
	return queries.NewGetCourierTrackQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderIntakeUoWFactory func() commands.OrderIntakeUoW

func (f FuncOrderIntakeUoWFactory) Create() commands.OrderIntakeUoW {
	return f()
}

type FuncOrderProgressUoWFactory func() commands.OrderProgressUoW

func (f FuncOrderProgressUoWFactory) Create() commands.OrderProgressUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncRoutePlanningUoWFactory func() commands.RoutePlanningUoW

func (f FuncRoutePlanningUoWFactory) Create() commands.RoutePlanningUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncSupportUoWFactory func() commands.SupportUoW

func (f FuncSupportUoWFactory) Create() commands.SupportUoW {
	return f()
}
