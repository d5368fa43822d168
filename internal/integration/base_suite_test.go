package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking-system/internal/app"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName      = "showtime_booking"
	dbUser      = "test_user"
	dbPassword  = "test_password"
	dbImageName = "postgres:17-alpine"
)

type BaseSuite struct {
	suite.Suite
	app         *app.Application
	db          *pgxpool.Pool
	dbContainer *PostgresContainer
	server      *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	s.Require().NoError(err, "failed to start DB container")

	s.dbContainer = postgresContainer

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testApp, err := app.NewApplication(cfg, logger)
	s.Require().NoError(err, "cannot initialize app")

	db, err := pgxpool.New(ctx, postgresContainer.ConnectionString)
	s.Require().NoError(err, "cannot connect to test database")

	s.app = testApp
	s.db = db
	s.server = httptest.NewServer(testApp.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.dbContainer != nil {
		err := testcontainers.TerminateContainer(s.dbContainer.Container.Container)
		if err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
}

// SetupTest wipes all rows so every test starts from an empty schema.
func (s *BaseSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(),
		`TRUNCATE bookings, showtimes, movies RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}
