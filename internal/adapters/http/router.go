package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"evalportal/internal/adapters/http/health"
	"evalportal/internal/adapters/http/pages"
	"evalportal/internal/adapters/http/reports"
	"evalportal/internal/adapters/http/users"
	"evalportal/internal/config"
	"evalportal/internal/platform/logger"
	"evalportal/internal/platform/metrics"
	platformMiddleware "evalportal/internal/platform/middleware"
)

type RouterDependencies struct {
	Config           *config.HttpConfig
	Logger           logger.Logger
	Renderer         *pages.Renderer
	UsersHandler     *users.Handler
	ReportsHandler   *reports.Handler
	LivenessHandler  *health.LivenessHandler
	ReadinessHandler *health.ReadinessHandler
	MetricsProvider  *metrics.Provider
}

func NewRouter(deps RouterDependencies) http.Handler {
	cfg := deps.Config
	log := deps.Logger
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(platformMiddleware.RequestLogger(log))
	r.Use(platformMiddleware.MetricsMiddleware(deps.MetricsProvider))
	r.Use(platformMiddleware.Recovery(log))
	r.Use(middleware.StripSlashes)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Use(httprate.LimitAll(
		cfg.RateLimit.GlobalRequests,
		time.Duration(cfg.RateLimit.GlobalWindow)*time.Second,
	))
	r.Use(httprate.LimitByIP(
		cfg.RateLimit.RequestsPerIP,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	))

	r.Get("/health/live", deps.LivenessHandler.Check)
	r.Get("/health/ready", deps.ReadinessHandler.Check)

	r.Handle("/metrics", deps.MetricsProvider.Handler())

	page := PageErrorHandler(deps.Renderer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, users.ListPath, http.StatusFound)
	})

	r.Route("/usuarios", func(usersRouter chi.Router) {
		usersRouter.Get("/", page(deps.UsersHandler.List))
		usersRouter.Post("/role", page(deps.UsersHandler.ChangeRole))
		usersRouter.Get("/exportar", page(deps.UsersHandler.Export))
		usersRouter.Get("/{id}/editar", page(deps.UsersHandler.EditForm))
		usersRouter.Post("/{id}/editar", page(deps.UsersHandler.Edit))
	})
	r.Get("/resetar-role-automatica/{id}", page(deps.UsersHandler.ResetRole))

	r.Get("/relatorios/avaliacoes", page(deps.ReportsHandler.Evaluations))

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Route("/usuarios", func(usersRouter chi.Router) {
			usersRouter.Get("/", ErrorHandler(deps.UsersHandler.ListJSON))
			usersRouter.Get("/{id}", ErrorHandler(deps.UsersHandler.GetJSON))
			usersRouter.Put("/{id}", ErrorHandler(deps.UsersHandler.EditJSON))
			usersRouter.Post("/{id}/role", ErrorHandler(deps.UsersHandler.ChangeRoleJSON))
			usersRouter.Post("/{id}/resetar-role", ErrorHandler(deps.UsersHandler.ResetRoleJSON))
		})
		apiRouter.Get("/relatorios/avaliacoes", ErrorHandler(deps.ReportsHandler.EvaluationsJSON))
	})

	return r
}
