package main

import (
	"context"
	"time"

	"evalportal/internal/adapters/database"
	"evalportal/internal/adapters/repository/memory"
	"evalportal/internal/adapters/repository/postgres"
	"evalportal/internal/adapters/repository/seed"
	"evalportal/internal/config"
	"evalportal/internal/core/ports"
	"evalportal/internal/platform/logger"
)

type userStore interface {
	ports.UserRepository
	seed.UserStore
}

type evaluationStore interface {
	ports.EvaluationRepository
	seed.EvaluationStore
}

// storage picks the repositories for the configured driver and prepares them
// once the database connection is up.
type storage struct {
	cfg         *config.DatabaseConfig
	db          *database.Lifecycle
	logger      logger.Logger
	users       userStore
	evaluations evaluationStore
}

func newStorage(cfg *config.DatabaseConfig, db *database.Lifecycle, log logger.Logger) *storage {
	s := &storage{cfg: cfg, db: db, logger: log}
	if cfg.UsesPostgres() {
		s.users = postgres.NewUserRepository(db)
		s.evaluations = postgres.NewEvaluationRepository(db)
	} else {
		s.users = memory.NewUserRepository()
		s.evaluations = memory.NewEvaluationRepository()
	}
	return s
}

func (s *storage) Users() ports.UserRepository {
	return s.users
}

func (s *storage) Evaluations() ports.EvaluationRepository {
	return s.evaluations
}

// Start runs after the database lifecycle hook.
func (s *storage) Start(ctx context.Context) error {
	if s.cfg.UsesPostgres() {
		if err := postgres.Migrate(ctx, s.db); err != nil {
			return err
		}
		s.logger.Info("Database schema applied")
	}

	if !s.cfg.Seed {
		return nil
	}
	if err := seed.Load(ctx, s.users, s.evaluations, time.Now()); err != nil {
		return err
	}
	s.logger.Info("Demo data loaded", logger.String("driver", string(s.cfg.Driver)))
	return nil
}
