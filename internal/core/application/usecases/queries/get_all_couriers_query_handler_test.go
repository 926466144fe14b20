package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"crm/internal/adapters/out/postgres/courierrepo"
	"crm/internal/core/application/usecases/queries"
	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

type GetAllCouriersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	positions *stubPositionCache
	handler   queries.GetAllCouriersQueryHandler
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))

	suite.positions = newStubPositionCache()
	suite.handler = queries.NewGetAllCouriersQueryHandler(db, suite.positions)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)
	suite.positions.reset()
}

func (suite *GetAllCouriersQueryHandlerTestSuite) addCourier(name string, located bool) *courier.Courier {
	registeredAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	aggregate, err := courier.NewCourier(kernel.NewUUID(), name, "+380501112233",
		courier.TransportBike, registeredAt)
	suite.Require().NoError(err)

	if located {
		point, pointErr := kernel.NewGeoPoint(50.4501, 30.5234)
		suite.Require().NoError(pointErr)
		suite.Require().NoError(aggregate.UpdateLocation(point, registeredAt.Add(time.Hour)))
	}

	repo := courierrepo.NewGormCourierRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_ReturnsCouriersOrderedByName() {
	suite.addCourier("Zoriana", true)
	suite.addCourier("Artem", false)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAllCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Artem", result[0].Name)
	suite.Equal("Zoriana", result[1].Name)
	suite.Equal("bike", result[0].Transport)
	suite.False(result[0].Available)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_LocationFieldsAreNilUntilFirstPing() {
	suite.addCourier("Artem", false)
	suite.addCourier("Zoriana", true)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAllCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Nil(result[0].Location)
	suite.Nil(result[0].LocatedAt)

	suite.Require().NotNil(result[1].Location)
	suite.InDelta(50.4501, result[1].Location.Latitude(), 1e-9)
	suite.Require().NotNil(result[1].LocatedAt)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_CachedPositionOverridesStoredRow() {
	aggregate := suite.addCourier("Zoriana", true)

	livePoint, err := kernel.NewGeoPoint(49.8397, 24.0297)
	suite.Require().NoError(err)
	liveAt := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	suite.Require().NoError(suite.positions.SetPosition(context.Background(), aggregate.ID(),
		ports.CourierPosition{Point: livePoint, RecordedAt: liveAt}))

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAllCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Require().NotNil(result[0].Location)
	suite.InDelta(49.8397, result[0].Location.Latitude(), 1e-9)
	suite.InDelta(24.0297, result[0].Location.Longitude(), 1e-9)
	suite.Require().NotNil(result[0].LocatedAt)
	suite.True(liveAt.Equal(*result[0].LocatedAt))
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_NotConstructedQueryFails() {
	_, err := suite.handler.Handle(context.Background(), queries.GetAllCouriersQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetAllCouriersQueryIsNotConstructed)
}

// noopTracker satisfies the repository tracker without recording anything.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// stubPositionCache is an in-memory stand-in for the Redis position cache.
type stubPositionCache struct {
	entries map[string]ports.CourierPosition
}

func newStubPositionCache() *stubPositionCache {
	return &stubPositionCache{entries: make(map[string]ports.CourierPosition)}
}

func (s *stubPositionCache) reset() {
	s.entries = make(map[string]ports.CourierPosition)
}

func (s *stubPositionCache) SetPosition(_ context.Context, courierID kernel.UUID, position ports.CourierPosition) error {
	s.entries[courierID.String()] = position
	return nil
}

func (s *stubPositionCache) GetPosition(_ context.Context, courierID kernel.UUID) (ports.CourierPosition, error) {
	position, ok := s.entries[courierID.String()]
	if !ok {
		return ports.CourierPosition{}, errs.NewObjectNotFoundError("courierID", courierID)
	}
	return position, nil
}

func TestGetAllCouriersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllCouriersQueryHandlerTestSuite))
}
