package main

import (
	"context"

	"evalportal/internal/adapters/database"
	"evalportal/internal/adapters/health"
	httpAdapter "evalportal/internal/adapters/http"
	healthHttp "evalportal/internal/adapters/http/health"
	"evalportal/internal/adapters/http/pages"
	reportsHandler "evalportal/internal/adapters/http/reports"
	usersHandler "evalportal/internal/adapters/http/users"
	"evalportal/internal/adapters/password"
	"evalportal/internal/adapters/validator"
	"evalportal/internal/config"
	"evalportal/internal/core/ports"
	reportUsecase "evalportal/internal/core/usecase/report"
	userUsecase "evalportal/internal/core/usecase/user"
	platformHealth "evalportal/internal/platform/health"
	"evalportal/internal/platform/logger"
	"evalportal/internal/platform/metrics"
	"evalportal/internal/version"

	"go.uber.org/fx"
)

func main() {
	fx.New(appModule).Run()
}

var appModule = fx.Options(
	// Platform
	fx.Provide(config.LoadBase),
	fx.Provide(config.LoadHttp),
	fx.Provide(config.LoadDatabase),
	fx.Provide(config.LoadPages),
	fx.Provide(func(cfg *config.BaseConfig) logger.Config {
		return cfg.LoggerSettings()
	}),
	fx.Provide(logger.NewZapLogger),
	fx.Provide(validator.NewPlaygroundAdapter),
	fx.Provide(database.NewDatabaseLifecycle),
	fx.Provide(pages.NewRenderer),

	// Storage
	fx.Provide(newStorage),
	fx.Provide(func(s *storage) ports.UserRepository { return s.Users() }),
	fx.Provide(func(s *storage) ports.EvaluationRepository { return s.Evaluations() }),
	fx.Provide(fx.Annotate(
		func() *password.BcryptHasher { return password.NewBcryptHasher(password.DefaultCost) },
		fx.As(new(ports.PasswordHasher)),
	)),

	// Health Checks
	fx.Provide(fx.Annotate(health.NewStorageChecker, fx.As(new(platformHealth.Checker)), fx.ResultTags(`group:"health_checkers"`))),
	fx.Provide(fx.Annotate(
		func(db *database.Lifecycle) *health.DatabaseChecker {
			return health.NewDatabaseChecker(db, "postgres")
		},
		fx.As(new(platformHealth.Checker)),
		fx.ResultTags(`group:"health_checkers"`),
	)),
	fx.Provide(fx.Annotate(
		func(cfg *config.DatabaseConfig, checkers []platformHealth.Checker) *platformHealth.Manager {
			m := platformHealth.NewManager()
			for _, checker := range checkers {
				// the memory driver has no pool to ping
				if _, isDB := checker.(*health.DatabaseChecker); isDB && !cfg.UsesPostgres() {
					continue
				}
				m.Register(checker)
			}
			return m
		},
		fx.ParamTags(``, `group:"health_checkers"`),
		fx.As(new(platformHealth.ManagerInterface)),
	)),

	// HTTP Server
	fx.Provide(metrics.NewProvider),
	fx.Provide(fx.Annotate(func(p *metrics.Provider) *metrics.Provider { return p }, fx.As(new(usersHandler.Recorder)))),
	fx.Provide(fx.Annotate(func(p *metrics.Provider) *metrics.Provider { return p }, fx.As(new(reportsHandler.Recorder)))),
	fx.Provide(httpAdapter.NewServer),
	fx.Provide(httpAdapter.NewRouter),
	fx.Provide(usersHandler.NewHandler),
	fx.Provide(reportsHandler.NewHandler),
	fx.Provide(func() *healthHttp.LivenessHandler {
		return healthHttp.NewLivenessHandler(version.Info())
	}),
	fx.Provide(func(hm platformHealth.ManagerInterface) *healthHttp.ReadinessHandler {
		return healthHttp.NewReadinessHandler(version.Info(), hm)
	}),
	fx.Provide(func(cfg *config.HttpConfig, log logger.Logger, renderer *pages.Renderer, users *usersHandler.Handler, reports *reportsHandler.Handler, liveness *healthHttp.LivenessHandler, readiness *healthHttp.ReadinessHandler, metrics *metrics.Provider) httpAdapter.RouterDependencies {
		return httpAdapter.RouterDependencies{
			Config:           cfg,
			Logger:           log,
			Renderer:         renderer,
			UsersHandler:     users,
			ReportsHandler:   reports,
			LivenessHandler:  liveness,
			ReadinessHandler: readiness,
			MetricsProvider:  metrics,
		}
	}),

	// Domain
	fx.Provide(fx.Annotate(
		func(repo ports.UserRepository, hasher ports.PasswordHasher, cfg *config.PagesConfig) *userUsecase.Usecase {
			return userUsecase.NewUsecase(repo, hasher, cfg.UsersPerPage)
		},
		fx.As(new(usersHandler.Manager)),
	)),
	fx.Provide(fx.Annotate(reportUsecase.NewUsecase, fx.As(new(reportsHandler.Manager)))),

	// Lifecycle Hooks
	fx.Invoke(func(lc fx.Lifecycle, log logger.Logger, db *database.Lifecycle, store *storage, srv *httpAdapter.Server) {
		build := version.Info()
		log.Info("Starting evalportal",
			logger.String("version", build.Version),
			logger.String("commit", build.GitCommit),
		)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				// stderr sync fails with EINVAL on some platforms
				_ = logger.Sync(log)
				return nil
			},
		})
		lc.Append(fx.Hook{
			OnStart: db.Start,
			OnStop:  db.Stop,
		})
		lc.Append(fx.Hook{
			OnStart: store.Start,
		})
		lc.Append(fx.Hook{
			OnStart: srv.Start,
			OnStop:  srv.Stop,
		})
	}),

	//fx.NopLogger,
)
