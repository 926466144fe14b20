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

	"crm/internal/adapters/out/postgres/pingrepo"
	"crm/internal/core/application/usecases/queries"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/tracking"
)

type GetCourierTrackQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetCourierTrackQueryHandler
}

func (suite *GetCourierTrackQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&pingrepo.PingDTO{}))

	suite.handler = queries.NewGetCourierTrackQueryHandler(db)
}

func (suite *GetCourierTrackQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetCourierTrackQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE courier_pings").Error)
}

func (suite *GetCourierTrackQueryHandlerTestSuite) addPing(
	courierID kernel.UUID,
	lat, lon float64,
	speedKmh *float64,
	recordedAt time.Time,
) {
	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)

	ping, err := tracking.NewPing(kernel.NewUUID(), courierID, point, nil, speedKmh, nil, recordedAt)
	suite.Require().NoError(err)

	repo := pingrepo.NewGormPingRepository(suite.db)
	suite.Require().NoError(repo.Add(context.Background(), ping))
}

func (suite *GetCourierTrackQueryHandlerTestSuite) TestHandle_ReturnsWindowOldestFirst() {
	courierID := kernel.NewUUID()
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	speed := 24.5

	suite.addPing(courierID, 50.4501, 30.5234, &speed, base.Add(10*time.Minute))
	suite.addPing(courierID, 50.4547, 30.5238, nil, base.Add(5*time.Minute))
	suite.addPing(courierID, 50.4600, 30.5300, nil, base.Add(2*time.Hour)) // outside window

	query, err := queries.NewGetCourierTrackQuery(courierID, base, base.Add(time.Hour))
	suite.Require().NoError(err)

	track, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(track, 2)

	suite.InDelta(50.4547, track[0].Point.Latitude(), 1e-9)
	suite.Nil(track[0].SpeedKmh)
	suite.InDelta(50.4501, track[1].Point.Latitude(), 1e-9)
	suite.Require().NotNil(track[1].SpeedKmh)
	suite.InDelta(24.5, *track[1].SpeedKmh, 1e-9)
	suite.True(track[0].RecordedAt.Before(track[1].RecordedAt))
}

func (suite *GetCourierTrackQueryHandlerTestSuite) TestHandle_IgnoresOtherCouriers() {
	courierID := kernel.NewUUID()
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	suite.addPing(kernel.NewUUID(), 50.4501, 30.5234, nil, base.Add(time.Minute))

	query, err := queries.NewGetCourierTrackQuery(courierID, base, base.Add(time.Hour))
	suite.Require().NoError(err)

	track, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(track)
	suite.Empty(track)
}

func TestGetCourierTrackQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetCourierTrackQueryHandlerTestSuite))
}
