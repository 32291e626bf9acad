// Package api wires the HTTP routes and middlewares of the match API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/handler"
)

// RequestTimeout bounds the time a single request may take.
const RequestTimeout = 60 * time.Second

// NewRouter returns the router serving every match endpoint.
func NewRouter(h *handler.Handler, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(RequestTimeout))
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Amz-Date"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", h.CreateMatch)
		r.Get("/", h.ListMatches)
		r.Get("/by-team", h.GetMatchesByTeam)
		r.Get("/{matchId}", h.GetMatch)
		r.Put("/{matchId}/{teamName}", h.UpdateMatch)
		r.Get("/{matchId}/translation", h.GetMatchTranslation)
	})

	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if log != nil {
				log.Info("http_request",
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}
