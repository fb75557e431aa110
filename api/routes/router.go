package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopfront/api/controllers"
	"github.com/angelmondragon/shopfront/api/middleware"
	"github.com/angelmondragon/shopfront/pkg/config"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svc controllers.Storefront,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, svc))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", controllers.StorefrontState(svc))
		r.Post("/catalog/fetch", controllers.FetchCatalog(svc, logg))

		r.Post("/cart/items/{itemID}", controllers.AddToCart(svc, logg))
		r.Delete("/cart/items/{itemID}", controllers.RemoveFromCart(svc, logg))

		r.Route("/dialog", func(r chi.Router) {
			r.Post("/", controllers.OpenDialog(svc, logg))
			r.Post("/primary", controllers.DialogPrimary(svc))
			r.Post("/secondary", controllers.DialogSecondary(svc))
		})

		r.Post("/notification/dismiss", controllers.DismissNotification(svc))
	})

	return r
}
