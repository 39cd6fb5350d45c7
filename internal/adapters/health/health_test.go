package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"evalportal/internal/adapters/database"
	"evalportal/internal/config"
	"evalportal/internal/core/domain/user"
	"evalportal/internal/core/ports/mocks"
	"evalportal/internal/platform/health"
	"evalportal/internal/platform/logger"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestNewDatabaseChecker(t *testing.T) {
	db := database.NewDatabaseLifecycle(&config.DatabaseConfig{}, logger.NewNop())

	checker := NewDatabaseChecker(db, "test-db")

	require.NotNil(t, checker)
	assert.Equal(t, "test-db", checker.Name())
	assert.Equal(t, db, checker.db)
}

func TestDatabaseChecker_Check(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  health.Status
		expectedMessage string
		expectError     bool
	}{
		{
			name:            "healthy",
			expectedStatus:  health.StatusHealthy,
			expectedMessage: "database connection healthy",
		},
		{
			name:            "not_connected",
			err:             database.ErrNotConnected,
			expectedStatus:  health.StatusUnhealthy,
			expectedMessage: "database connection is not initialized",
		},
		{
			name:            "ping_fails",
			err:             errors.New("connection refused"),
			expectedStatus:  health.StatusUnhealthy,
			expectedMessage: "database connection failed",
			expectError:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewDatabaseChecker(stubPinger{err: tt.err}, "db").Check(context.Background())

			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectError, result.Error != "")
		})
	}
}

func TestDatabaseChecker_Check_LifecycleNotStarted(t *testing.T) {
	db := database.NewDatabaseLifecycle(&config.DatabaseConfig{}, logger.NewNop())

	result := NewDatabaseChecker(db, "db").Check(context.Background())

	assert.Equal(t, health.StatusUnhealthy, result.Status)
	assert.Equal(t, "database connection is not initialized", result.Message)
	assert.Empty(t, result.Error)
}

func TestStorageChecker_Check(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	repo.On("Stats", mock.Anything).Return(user.Stats{Total: 6}, nil).Once()
	checker := NewStorageChecker(repo)

	result := checker.Check(context.Background())

	assert.Equal(t, "user_storage", checker.Name())
	assert.Equal(t, health.StatusHealthy, result.Status)
	assert.Equal(t, "user storage operational, 6 users", result.Message)
	assert.Equal(t, health.ComponentDatastore, result.ComponentType)
}

func TestStorageChecker_Check_QueryFails(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	repo.On("Stats", mock.Anything).Return(user.Stats{}, errors.New("boom")).Once()

	result := NewStorageChecker(repo).Check(context.Background())

	assert.Equal(t, health.StatusUnhealthy, result.Status)
	assert.Equal(t, "boom", result.Error)
}

func TestStorageChecker_Check_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewStorageChecker(mocks.NewUserRepository(t)).Check(ctx)

	assert.Equal(t, health.StatusUnhealthy, result.Status)
	assert.Equal(t, "storage check cancelled", result.Message)
}

func TestHealthCheckers_InterfaceCompliance(t *testing.T) {
	var _ health.Checker = (*DatabaseChecker)(nil)
	var _ health.Checker = (*StorageChecker)(nil)
}
