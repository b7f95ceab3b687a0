package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/courierrepo"
	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/stretchr/testify/suite"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CourierRepositoryIntegrationTestSuite verifies courier persistence and
// postal-code pool queries against a real PostgreSQL instance.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.PostalAssignmentDTO{},
	))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers, postal_assignments").Error)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	hired, err := courier.NewCourier("Jules")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, hired))

	restored, err := suite.repository.Get(ctx, hired.ID())
	suite.Require().NoError(err)
	suite.Equal("Jules", restored.Name())
	suite.True(restored.IsAvailable())
	suite.Nil(restored.UnavailableUntil())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsBooking() {
	ctx := context.Background()

	hired, err := courier.NewCourier("Jules")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, hired))

	deliveryAt := time.Now().Add(30 * time.Minute)
	suite.Require().NoError(hired.Book(deliveryAt))
	suite.Require().NoError(suite.repository.Update(ctx, hired))

	restored, err := suite.repository.Get(ctx, hired.ID())
	suite.Require().NoError(err)
	suite.False(restored.IsAvailable())
	suite.Require().NotNil(restored.UnavailableUntil())
	suite.WithinDuration(deliveryAt, *restored.UnavailableUntil(), time.Second)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestLinkPostalCode_Idempotent() {
	ctx := context.Background()

	hired, err := courier.NewCourier("Jules")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, hired))

	suite.Require().NoError(suite.repository.LinkPostalCode(ctx, hired.ID(), "1000AB"))
	suite.Require().NoError(suite.repository.LinkPostalCode(ctx, hired.ID(), "1000AB"))

	var count int64
	suite.Require().NoError(suite.db.Table("postal_assignments").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetLinkedForUpdate_FiltersByPostalCode() {
	ctx := context.Background()

	inPool, err := courier.NewCourier("Jules")
	suite.Require().NoError(err)
	elsewhere, err := courier.NewCourier("Vincent")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, inPool))
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))
	suite.Require().NoError(suite.repository.LinkPostalCode(ctx, inPool.ID(), "1000AB"))
	suite.Require().NoError(suite.repository.LinkPostalCode(ctx, elsewhere.ID(), "9999ZZ"))

	// Row locks require a transaction.
	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	linked, err := courierrepo.NewGormCourierRepository(tx).GetLinkedForUpdate(ctx, "1000AB")
	suite.Require().NoError(err)
	suite.Require().Len(linked, 1)
	suite.Equal(inPool.ID(), linked[0].ID())

	linked, err = courierrepo.NewGormCourierRepository(tx).GetLinkedForUpdate(ctx, "5555XX")
	suite.Require().NoError(err)
	suite.Empty(linked)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllDueForRefresh() {
	ctx := context.Background()
	now := time.Now()

	elapsed := now.Add(-time.Minute)
	stillBusy := now.Add(time.Hour)

	due := courier.RestoreCourier(kernel.NewUUID(), "Jules", false, &elapsed)
	busy := courier.RestoreCourier(kernel.NewUUID(), "Vincent", false, &stillBusy)
	free, err := courier.NewCourier("Mia")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, due))
	suite.Require().NoError(suite.repository.Add(ctx, busy))
	suite.Require().NoError(suite.repository.Add(ctx, free))

	dueCouriers, err := suite.repository.GetAllDueForRefresh(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(dueCouriers, 1)
	suite.Equal(due.ID(), dueCouriers[0].ID())
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
