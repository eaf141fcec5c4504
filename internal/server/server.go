// Package server exposes the HTTP API: auth, weekly games, pick
// submission, leaderboards and the admin surface.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/cache"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/config"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/metrics"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/repository"
	syncjobs "github.com/jgvaught118/nfl-frenzy-backend/internal/sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
	"github.com/rs/zerolog/log"
)

// Server wires the API handlers to their dependencies
type Server struct {
	cfg         *config.Config
	db          *repository.Database
	cache       *cache.Cache
	syncer      *syncjobs.Syncer
	tokenAuth   *jwtauth.JWTAuth
	doubleWeeks map[int]bool
}

// NewServer creates the API server. The cache may be nil; leaderboards then
// recompute on every request.
func NewServer(cfg *config.Config, db *repository.Database, c *cache.Cache, syncer *syncjobs.Syncer) *Server {
	doubleWeeks, _ := cfg.DoubleWeekSet()
	return &Server{
		cfg:         cfg,
		db:          db,
		cache:       c,
		syncer:      syncer,
		tokenAuth:   jwtauth.New("HS256", []byte(cfg.JWTSecret), nil),
		doubleWeeks: doubleWeeks,
	}
}

// Handler builds the chi router with the full middleware stack
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(s.cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(s.cfg.RateLimit, 1*time.Minute))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/games/week/{week}", s.handleGamesByWeek)
			r.Post("/picks/submit", s.handleSubmitPick)
			r.Get("/picks/week/{week}", s.handleMyPick)
			r.Get("/leaderboard/week/{week}", s.handleWeekLeaderboard)
			r.Get("/leaderboard/overall", s.handleOverallLeaderboard)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Put("/admin/gotw/{week}", s.handleSetGOTW)
				r.Put("/admin/potw/{week}", s.handleSetPOTW)
				r.Get("/admin/users", s.handleListUsers)
				r.Post("/admin/sync/scores", s.handleSyncScores)
				r.Post("/admin/sync/kickoffs", s.handleSyncKickoffs)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Health(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// instrument records request counts by route pattern and status
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}

// requireAdmin rejects tokens without the is_admin claim
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userIDFromContext extracts the authenticated user id from JWT claims
func userIDFromContext(r *http.Request) (int64, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, false
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// weekParam parses the {week} URL segment
func weekParam(r *http.Request) (int, bool) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 || week > 18 {
		return 0, false
	}
	return week, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
