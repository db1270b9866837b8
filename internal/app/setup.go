// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/account"
	"github.com/abgdnv/catalog/internal/catalog/service"
	"github.com/abgdnv/catalog/internal/catalog/store"
	"github.com/abgdnv/catalog/internal/config"
	"github.com/abgdnv/catalog/internal/transport/rest"
	"github.com/abgdnv/catalog/pkg/auth"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	Catalog  service.CatalogService
	Accounts *account.Service
	Codec    *auth.Codec
	Logger   *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *Dependencies {
	users := store.NewPgUserStore(dbPool)
	codec := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Dependencies{
		Catalog:  service.NewService(store.NewPgProductStore(dbPool), users),
		Accounts: account.NewService(users, codec),
		Codec:    codec,
		Logger:   logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the catalog service.
// Also used by tests to run the full router against mock dependencies.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes. Login and signup are public; the
// product routes sit behind the bearer-token gate.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.Catalog, deps.Logger)
	authHandler := rest.NewAuthHandler(deps.Accounts, deps.Logger)

	mux.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(web.AuthMiddleware(deps.Codec, deps.Logger))
			productHandler.RegisterRoutes(r)
		})
	})

	mux.Get("/healthz", productHandler.HealthCheck)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		web.RespondMessage(w, deps.Logger, http.StatusNotFound, "endpoint not found")
	})
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
