package health

import (
	"context"
	"errors"

	"evalportal/internal/adapters/database"
	"evalportal/internal/platform/health"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type DatabaseChecker struct {
	db   Pinger
	name string
}

func NewDatabaseChecker(db Pinger, name string) *DatabaseChecker {
	return &DatabaseChecker{
		db:   db,
		name: name,
	}
}

func (c *DatabaseChecker) Name() string {
	return c.name
}

func (c *DatabaseChecker) Check(ctx context.Context) health.CheckResult {
	err := c.db.Ping(ctx)
	switch {
	case errors.Is(err, database.ErrNotConnected):
		return health.CheckResult{
			Status:        health.StatusUnhealthy,
			ComponentType: health.ComponentDatastore,
			Message:       "database connection is not initialized",
		}
	case err != nil:
		return health.CheckResult{
			Status:        health.StatusUnhealthy,
			ComponentType: health.ComponentDatastore,
			Message:       "database connection failed",
			Error:         err.Error(),
		}
	}

	return health.CheckResult{
		Status:        health.StatusHealthy,
		ComponentType: health.ComponentDatastore,
		Message:       "database connection healthy",
	}
}
