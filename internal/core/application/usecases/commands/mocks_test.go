package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/domain/model/client"
	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/payment"
	"crm/internal/core/domain/model/route"
	"crm/internal/core/domain/model/support"
	"crm/internal/core/domain/model/tracking"
	"crm/internal/core/ports"
)

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) GetByPhone(ctx context.Context, phone string) (*client.Client, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstNew(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNewWithoutLocation(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUndelivered(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNewForCourierPlanning(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.Route) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.Route) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetActiveByCourierID(ctx context.Context, courierID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockPingRepository struct{ mock.Mock }

func (m *MockPingRepository) Add(ctx context.Context, p *tracking.Ping) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPingRepository) GetTrack(ctx context.Context, courierID kernel.UUID, from, to time.Time) ([]*tracking.Ping, error) {
	args := m.Called(ctx, courierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Ping), args.Error(1)
}

type MockSupportRepository struct{ mock.Mock }

func (m *MockSupportRepository) Add(ctx context.Context, msg *support.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockSupportRepository) GetHistory(ctx context.Context, clientID kernel.UUID, limit int) ([]*support.Message, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*support.Message), args.Error(1)
}

// MockUoW carries every repository, so it satisfies each of the narrow unit
// of work interfaces a handler may ask for.
type MockUoW struct {
	mock.Mock

	clients  *MockClientRepository
	couriers *MockCourierRepository
	orders   *MockOrderRepository
	payments *MockPaymentRepository
	routes   *MockRouteRepository
	pings    *MockPingRepository
	supports *MockSupportRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		clients:  new(MockClientRepository),
		couriers: new(MockCourierRepository),
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentRepository),
		routes:   new(MockRouteRepository),
		pings:    new(MockPingRepository),
		supports: new(MockSupportRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ClientRepository() ports.ClientRepository   { return m.clients }
func (m *MockUoW) CourierRepository() ports.CourierRepository { return m.couriers }
func (m *MockUoW) OrderRepository() ports.OrderRepository     { return m.orders }
func (m *MockUoW) PaymentRepository() ports.PaymentRepository { return m.payments }
func (m *MockUoW) RouteRepository() ports.RouteRepository     { return m.routes }
func (m *MockUoW) PingRepository() ports.PingRepository       { return m.pings }
func (m *MockUoW) SupportRepository() ports.SupportRepository { return m.supports }

// expectTx wires the usual Begin/Rollback pair, plus Commit when the
// handler is expected to reach it.
func (m *MockUoW) expectTx(ctx context.Context, commits bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commits {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

// Factories returning the shared mock unit of work.

type clientUoWFactory struct{ uow *MockUoW }

func (f clientUoWFactory) Create() commands.ClientUoW { return f.uow }

type courierUoWFactory struct{ uow *MockUoW }

func (f courierUoWFactory) Create() commands.CourierUoW { return f.uow }

type orderIntakeUoWFactory struct{ uow *MockUoW }

func (f orderIntakeUoWFactory) Create() commands.OrderIntakeUoW { return f.uow }

type dispatchUoWFactory struct{ uow *MockUoW }

func (f dispatchUoWFactory) Create() commands.DispatchUoW { return f.uow }

type orderProgressUoWFactory struct{ uow *MockUoW }

func (f orderProgressUoWFactory) Create() commands.OrderProgressUoW { return f.uow }

type trackingUoWFactory struct{ uow *MockUoW }

func (f trackingUoWFactory) Create() commands.TrackingUoW { return f.uow }

type paymentUoWFactory struct{ uow *MockUoW }

func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.uow }

type routePlanningUoWFactory struct{ uow *MockUoW }

func (f routePlanningUoWFactory) Create() commands.RoutePlanningUoW { return f.uow }

type routeUoWFactory struct{ uow *MockUoW }

func (f routeUoWFactory) Create() commands.RouteUoW { return f.uow }

type supportUoWFactory struct{ uow *MockUoW }

func (f supportUoWFactory) Create() commands.SupportUoW { return f.uow }

// Gateway mocks.

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (string, error) {
	args := m.Called(ctx, point)
	return args.String(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockLocationCache struct{ mock.Mock }

func (m *MockLocationCache) SetPosition(ctx context.Context, courierID kernel.UUID, position ports.CourierPosition) error {
	return m.Called(ctx, courierID, position).Error(0)
}

func (m *MockLocationCache) GetPosition(ctx context.Context, courierID kernel.UUID) (ports.CourierPosition, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(ports.CourierPosition), args.Error(1)
}

type MockChatProvider struct{ mock.Mock }

func (m *MockChatProvider) Reply(ctx context.Context, question string, history []ports.ChatTurn) (string, error) {
	args := m.Called(ctx, question, history)
	return args.String(0), args.Error(1)
}

type MockRouteProvider struct{ mock.Mock }

func (m *MockRouteProvider) EstimateRoute(ctx context.Context, from, to kernel.GeoPoint, profile string) (ports.RouteEstimate, error) {
	args := m.Called(ctx, from, to, profile)
	return args.Get(0).(ports.RouteEstimate), args.Error(1)
}
