package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/site"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(deps Dependencies, settings config.Settings) (Server, error) {
	if deps.Site == nil {
		return Server{}, fmt.Errorf("site renderer is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", settings.Server.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withSettings(settings), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.Server.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: settings.Server.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  settings.Server.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings    config.Settings
	startupTime time.Time
}

func withSettings(s config.Settings) func(*router) {
	return func(r *router) {
		r.settings = s
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(metricsMiddleware)

	origins := router.settings.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL", "HX-Trigger"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := initializeHandlers(deps, router.settings)

	authMiddleware := newAuthMiddleware(deps.Auth)
	chiRouter.Use(authMiddleware.identify)

	contactLimiter := newIPRateLimiter(router.settings.Site.ContactRatePerMinute, router.settings.Site.ContactBurst)

	chiRouter.Get("/healthz", healthCheck(deps, router.startupTime))
	setupPublicRoutes(chiRouter, handlers, contactLimiter, site.Assets())
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// HealthResponse is served on /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Store   string `json:"store"`
	Content string `json:"content"`
}

func healthCheck(deps Dependencies, startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startupTime).Round(time.Second).String(),
			Store:   "configured",
			Content: "static",
		}
		if !deps.Database.Configured() {
			resp.Store = "unconfigured"
		}
		if deps.Site.Dynamic() {
			resp.Content = "dynamic"
		}
		responder.WriteJSON(w, resp)
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
