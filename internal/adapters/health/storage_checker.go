package health

import (
	"context"
	"fmt"

	"evalportal/internal/core/ports"
	"evalportal/internal/platform/health"
)

// StorageChecker probes the user store with a count query. It covers the
// in-memory driver, which has no connection to ping.
type StorageChecker struct {
	users ports.UserRepository
}

func NewStorageChecker(users ports.UserRepository) *StorageChecker {
	return &StorageChecker{users: users}
}

func (c *StorageChecker) Name() string {
	return "user_storage"
}

func (c *StorageChecker) Check(ctx context.Context) health.CheckResult {
	if err := ctx.Err(); err != nil {
		return health.CheckResult{
			Status:        health.StatusUnhealthy,
			ComponentType: health.ComponentDatastore,
			Message:       "storage check cancelled",
			Error:         err.Error(),
		}
	}

	stats, err := c.users.Stats(ctx)
	if err != nil {
		return health.CheckResult{
			Status:        health.StatusUnhealthy,
			ComponentType: health.ComponentDatastore,
			Message:       "user storage query failed",
			Error:         err.Error(),
		}
	}

	return health.CheckResult{
		Status:        health.StatusHealthy,
		ComponentType: health.ComponentDatastore,
		Message:       fmt.Sprintf("user storage operational, %d users", stats.Total),
	}
}
