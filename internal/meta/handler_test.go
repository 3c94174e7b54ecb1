package meta_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gcclub/membercard/internal/meta"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type healthResponse struct {
	Status string                    `json:"status"`
	Checks map[string]map[string]any `json:"checks"`
}

func TestHealth_Healthy(t *testing.T) {
	// Given: a reachable database
	db := testutil.SetupTestDB(t)
	h := meta.NewHandler(testutil.NewTestConfig(), &database.DB{DB: db}, nil)

	router := testutil.SetupTestRouter()
	router.GET("/health", h.Health)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var response healthResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "up", response.Checks["database"]["status"])
	assert.NotContains(t, response.Checks, "redis")
}

func TestHealth_DatabaseDown(t *testing.T) {
	// Given: a database whose ping fails
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	h := meta.NewHandler(testutil.NewTestConfig(), &database.DB{DB: gormDB}, nil)
	router := testutil.SetupTestRouter()
	router.GET("/health", h.Health)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	// Then
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	var response healthResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "down", response.Checks["database"]["status"])
	assert.Contains(t, response.Checks["database"]["error"], "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
