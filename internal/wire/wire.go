package wire

import (
	"net/http"

	"property-booking/internal/adaptor"
	"property-booking/internal/data/repository"
	"property-booking/internal/payment"
	"property-booking/internal/relay"
	"property-booking/internal/usecase"
	"property-booking/pkg/metrics"
	"property-booking/pkg/middleware"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Deps are the external collaborators the application talks to.
type Deps struct {
	Repo      *repository.Repository
	Cache     *redis.Client // optional, enables Idempotency-Key handling
	Gateway   payment.Gateway
	Forwarder usecase.Forwarder
}

// Wiring builds services, handlers and routes.
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	metrics.Register()

	service := usecase.NewService(deps.Repo, config, deps.Gateway, relay.Forms(config.GHL), deps.Forwarder, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireAuth(r, handler.Auth, deps.Repo, config, logger)
	wireProperty(r, handler.Property, deps.Repo, config, logger)
	wireBooking(r, handler.Booking, deps.Repo, config, logger)
	wirePayment(r, handler.Payment, deps, config, logger)
	wireAdmin(r, handler.Admin, deps.Repo, config, logger)
	wireRelay(r, handler.Relay, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
