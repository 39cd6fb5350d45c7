package health

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Component types reported alongside a check, following the health+json draft.
const (
	ComponentDatastore = "datastore"
	ComponentComponent = "component"
)

const defaultCheckTimeout = 3 * time.Second

type CheckResult struct {
	Status        Status        `json:"status"`
	ComponentType string        `json:"component_type,omitempty"`
	Message       string        `json:"message,omitempty"`
	Latency       time.Duration `json:"latency"`
	Error         string        `json:"error,omitempty"`
}

type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type ManagerInterface interface {
	Register(checker Checker)
	CheckAll(ctx context.Context) map[string]CheckResult
	IsHealthy(ctx context.Context) bool
}

// Manager runs the registered checkers in parallel, each bounded by its own timeout.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
	mu       sync.RWMutex
}

var _ ManagerInterface = (*Manager)(nil)

func NewManager() *Manager {
	return NewManagerWithTimeout(defaultCheckTimeout)
}

func NewManagerWithTimeout(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	return &Manager{
		checkers: make([]Checker, 0),
		timeout:  timeout,
	}
}

func (m *Manager) Register(checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkers = append(m.checkers, checker)
}

func (m *Manager) CheckAll(ctx context.Context) map[string]CheckResult {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	m.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		resMu   sync.Mutex
		results = make(map[string]CheckResult, len(checkers))
	)

	for _, checker := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			start := time.Now()
			result := c.Check(checkCtx)
			result.Latency = time.Since(start)

			resMu.Lock()
			results[c.Name()] = result
			resMu.Unlock()
		}(checker)
	}
	wg.Wait()

	return results
}

func (m *Manager) IsHealthy(ctx context.Context) bool {
	return Overall(m.CheckAll(ctx)) == StatusHealthy
}

func Overall(results map[string]CheckResult) Status {
	for _, result := range results {
		if result.Status != StatusHealthy {
			return StatusUnhealthy
		}
	}
	return StatusHealthy
}
