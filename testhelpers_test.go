//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// travelStack holds wired-up travel service components.
type travelStack struct {
	Trips    *application.TripService
	UserRepo *repository.GormUserRepository
}

// setupContainers starts a PostgreSQL testcontainer and returns a connected,
// migrated GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("test_travel"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.UserPreferencesModel{},
		&repository.TripModel{},
		&repository.TripDayModel{},
		&repository.ItineraryItemModel{},
		&repository.TransportationModel{},
		&repository.FeedbackModel{},
		&repository.ConversationModel{},
		&repository.PlaceModel{},
	))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupTravelStack wires up the trip service against the given DB. No Kafka
// brokers are configured, so the nil producer drops events.
func setupTravelStack(t *testing.T, db *gorm.DB) *travelStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	userRepo := repository.NewGormUserRepository(db)
	tripRepo := repository.NewGormTripRepository(db)
	tripSvc := application.NewTripService(tripRepo, userRepo, nil, logger)

	return &travelStack{Trips: tripSvc, UserRepo: userRepo}
}

// seedUser inserts a user row and returns its id.
func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	now := time.Now().UTC()
	model := repository.UserModel{
		Email:        email,
		PasswordHash: "$2a$10$integrationtesthashonly00000000000000000000000000000",
		Name:         "Integration Tester",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed user")
	return model.ID
}
