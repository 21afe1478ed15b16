package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ridgelinemoto/dealerops-backend/api/controllers"
	"github.com/ridgelinemoto/dealerops-backend/api/middleware"
	"github.com/ridgelinemoto/dealerops-backend/internal/hdimport"
	"github.com/ridgelinemoto/dealerops-backend/internal/reconcile"
	"github.com/ridgelinemoto/dealerops-backend/internal/stock"
	"github.com/ridgelinemoto/dealerops-backend/internal/transition"
	"github.com/ridgelinemoto/dealerops-backend/pkg/config"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
	"github.com/ridgelinemoto/dealerops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	reconcileService reconcile.Service,
	transitionService transition.Service,
	hdService hdimport.Service,
	stockRepo stock.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// a nil *redis.Client must stay a nil interface or the readiness ping
	// would dereference the nil receiver
	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, cfg.HDImport.IdempotencyTTL, logg))

		r.Get("/board", controllers.Board(reconcileService, logg))
		r.Get("/picklist", controllers.Picklist(reconcileService, logg))
		r.Post("/items/transition", controllers.ApplyTransition(transitionService, logg))
		r.Get("/stock/{partNumber}", controllers.StockLookup(stockRepo, logg))

		r.Route("/hd", func(r chi.Router) {
			r.Post("/orders/{orderNumber}/upload", controllers.HDUpload(hdService, cfg.HDImport, logg))
			r.Post("/uploads", controllers.HDBatch(hdService, logg))
			r.Route("/exclusions", func(r chi.Router) {
				r.Get("/", controllers.ExclusionList(hdService, logg))
				r.Post("/", controllers.ExclusionCreate(hdService, logg))
				r.Delete("/{exclusionId}", controllers.ExclusionDelete(hdService, logg))
			})
		})
	})

	return r
}
