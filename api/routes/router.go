package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garagelab/modstudio-backend/api/controllers"
	"github.com/garagelab/modstudio-backend/api/middleware"
	"github.com/garagelab/modstudio-backend/internal/appointments"
	"github.com/garagelab/modstudio-backend/internal/auth"
	"github.com/garagelab/modstudio-backend/internal/builds"
	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/internal/customers"
	"github.com/garagelab/modstudio-backend/internal/history"
	"github.com/garagelab/modstudio-backend/internal/insights"
	"github.com/garagelab/modstudio-backend/internal/reports"
	"github.com/garagelab/modstudio-backend/pkg/config"
	"github.com/garagelab/modstudio-backend/pkg/logger"
	"github.com/garagelab/modstudio-backend/pkg/metrics"
	"github.com/garagelab/modstudio-backend/pkg/redis"
)

// Services groups the domain services the router exposes.
type Services struct {
	Auth         auth.Service
	Customers    customers.Service
	Cars         cars.Service
	Catalog      catalog.Service
	Builds       builds.Service
	History      history.Service
	Insights     insights.Service
	Reports      reports.Service
	Appointments appointments.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.Window,
		cfg.AuthRateLimit.MaxAttempts,
		cfg.AuthRateLimit.MaxAttempts,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.Window,
		cfg.AuthRateLimit.MaxAttempts,
		cfg.AuthRateLimit.MaxAttempts,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.AuthRegister(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/profile", controllers.CustomerProfile(svcs.Customers, logg))
		r.Put("/profile", controllers.CustomerProfileUpdate(svcs.Customers, logg))

		r.Route("/cars", func(r chi.Router) {
			r.Post("/", controllers.CarRegister(svcs.Cars, logg))
			r.Get("/", controllers.CarList(svcs.Cars, logg))
			r.Get("/{carId}", controllers.CarGet(svcs.Cars, logg))
			r.Delete("/{carId}", controllers.CarRemove(svcs.Cars, logg))
		})

		r.Route("/catalog/modifications", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(svcs.Catalog, logg))
			r.Get("/{modificationId}", controllers.CatalogGet(svcs.Catalog, logg))
		})

		r.Route("/builds", func(r chi.Router) {
			r.Post("/quote", controllers.BuildQuote(svcs.Builds, logg))
			r.Post("/", controllers.BuildCheckout(svcs.Builds, logg))
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", controllers.BillList(svcs.History, logg))
			r.Get("/{billId}", controllers.BillDetail(svcs.History, logg))
			r.Get("/{billId}/text", controllers.BillText(svcs.History, logg))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", controllers.AppointmentSchedule(svcs.Appointments, logg))
			r.Get("/", controllers.AppointmentList(svcs.Appointments, logg))
			r.Post("/{appointmentId}/cancel", controllers.AppointmentCancel(svcs.Appointments, logg))
			r.Post("/{appointmentId}/complete", controllers.AppointmentComplete(svcs.Appointments, logg))
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/recommendations", controllers.InsightRecommendations(svcs.Insights, logg))
			r.Post("/risk", controllers.InsightRisk(svcs.Insights, logg))
			r.Get("/segment", controllers.InsightSegment(svcs.Insights, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/spending", controllers.ReportSpending(svcs.Reports, logg))
			r.Get("/categories", controllers.ReportCategories(svcs.Reports, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/dashboard", controllers.AdminDashboard(svcs.Reports, logg))
			r.Route("/catalog/modifications", func(r chi.Router) {
				r.Get("/", controllers.AdminCatalogList(svcs.Catalog, logg))
				r.Post("/", controllers.AdminCatalogCreate(svcs.Catalog, logg))
				r.Put("/{modificationId}", controllers.AdminCatalogUpdate(svcs.Catalog, logg))
				r.Delete("/{modificationId}", controllers.AdminCatalogDeactivate(svcs.Catalog, logg))
			})
		})
	})

	return r
}
