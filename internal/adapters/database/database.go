package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"evalportal/internal/config"
	"evalportal/internal/platform/database/postgres"
	"evalportal/internal/platform/logger"
)

var ErrNotConnected = errors.New("database is not connected")

type opener func(cfg *config.PostgresConfig) (*postgres.DB, error)

func openPostgres(cfg *config.PostgresConfig) (*postgres.DB, error) {
	return postgres.New(cfg)
}

// Lifecycle owns the postgres pool. With the memory storage driver it never
// connects.
type Lifecycle struct {
	cfg    *config.DatabaseConfig
	logger logger.Logger
	open   opener
	db     *postgres.DB
	mu     sync.Mutex
}

func NewDatabaseLifecycle(cfg *config.DatabaseConfig, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		cfg:    cfg,
		logger: log.With(logger.String("component", "database")),
		open:   openPostgres,
	}
}

func (d *Lifecycle) Enabled() bool {
	return d.cfg.UsesPostgres()
}

// Start connects, retrying with a linear backoff so the portal can come up
// before the database container does.
func (d *Lifecycle) Start(ctx context.Context) error {
	if !d.Enabled() {
		d.logger.Info("Storage driver is not postgres, skipping database connection",
			logger.String("driver", string(d.cfg.Driver)))
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		d.logger.Warn("Database connection already exists, closing existing connection")
		d.closeQuietly(d.db)
		d.db = nil
	}

	pg := &d.cfg.Postgres
	attempts := max(pg.ConnectAttempts, 1)

	d.logger.Info("Starting database connection",
		logger.String("host", pg.Host),
		logger.String("database", pg.Database),
		logger.Int("attempts", attempts))

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := d.connect(ctx)
		if err == nil {
			d.db = db
			d.logger.Info("Connected to PostgreSQL", logger.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		d.logger.Warn("PostgreSQL is not reachable",
			logger.Int("attempt", attempt),
			logger.Error(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to postgres: %w", errors.Join(lastErr, ctx.Err()))
		case <-time.After(pg.ConnectBackoff * time.Duration(attempt)):
		}
	}

	d.logger.Error("Giving up on PostgreSQL", logger.Error(lastErr))
	return fmt.Errorf("connect to postgres after %d attempts: %w", attempts, lastErr)
}

func (d *Lifecycle) connect(ctx context.Context) (*postgres.DB, error) {
	db, err := d.open(&d.cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		d.closeQuietly(db)
		return nil, err
	}
	return db, nil
}

func (d *Lifecycle) closeQuietly(db *postgres.DB) {
	if err := db.Close(); err != nil {
		d.logger.Debug("Closing discarded connection failed", logger.Error(err))
	}
}

func (d *Lifecycle) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	d.logger.Info("Closing database connection")

	db := d.db
	d.db = nil

	done := make(chan error, 1)
	go func() {
		done <- db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			d.logger.Error("Error closing database connection", logger.Error(err))
			return err
		}
		d.logger.Info("Database connection closed")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Database shutdown timed out")
		return ctx.Err()
	}
}

func (d *Lifecycle) Connection() *postgres.DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db
}

// Ping reports ErrNotConnected before Start or after Stop.
func (d *Lifecycle) Ping(ctx context.Context) error {
	db := d.Connection()
	if db == nil {
		return ErrNotConnected
	}
	return db.Ping(ctx)
}
