package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calzalindo/catalog-backend/api/controllers"
	"github.com/calzalindo/catalog-backend/api/middleware"
	"github.com/calzalindo/catalog-backend/internal/catalog"
	"github.com/calzalindo/catalog-backend/internal/images"
	"github.com/calzalindo/catalog-backend/internal/inquiry"
	"github.com/calzalindo/catalog-backend/internal/triage"
	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/calzalindo/catalog-backend/pkg/db"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/calzalindo/catalog-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	Catalog    catalog.Service
	Triage     triage.Service
	Images     images.Service
	ImageProxy *images.Proxy
	Inquiry    inquiry.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)

	// A nil *redis.Client stays a nil interface so downstream nil checks hold.
	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(deps.Catalog, logg))
		r.Get("/families", controllers.CatalogFamilies(deps.Catalog, logg))
		r.Get("/img", controllers.ImageProxy(deps.ImageProxy, logg))

		r.Route("/inquiry/{cartId}", func(r chi.Router) {
			r.Get("/", controllers.InquiryGet(deps.Inquiry, logg))
			r.Delete("/", controllers.InquiryClear(deps.Inquiry, logg))
			r.Post("/items", controllers.InquiryAddItem(deps.Inquiry, logg))
			r.Delete("/items/{itemId}", controllers.InquiryRemoveItem(deps.Inquiry, logg))
			r.Get("/whatsapp-link", controllers.InquiryWhatsAppLink(deps.Inquiry, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		login := controllers.AdminAuthLogin(cfg, logg)
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/auth/login", login)
		} else {
			r.Post("/auth/login", login)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Get("/stats", controllers.AdminStats(deps.Triage, logg))
			r.Get("/no-photo", controllers.AdminNoPhoto(deps.Triage, logg))
			r.Get("/low-stock", controllers.AdminLowStock(deps.Triage, logg))
			r.Get("/no-price", controllers.AdminNoPrice(deps.Triage, logg))
			r.Get("/no-brand", controllers.AdminNoBrand(deps.Triage, logg))

			r.Post("/migrate-images", controllers.AdminMigrateImages(deps.Images, logg))
			r.Post("/update-image", controllers.AdminUpdateImage(deps.Images, logg))
		})
	})

	return r
}
