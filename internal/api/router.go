package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/neonsnake/neonsnake-backend/internal/api/handler"
	apimiddleware "github.com/neonsnake/neonsnake-backend/internal/api/middleware"
	"github.com/neonsnake/neonsnake-backend/internal/middleware"
	"github.com/neonsnake/neonsnake-backend/internal/services/auth"
	"github.com/neonsnake/neonsnake-backend/internal/services/leaderboard"
	"github.com/neonsnake/neonsnake-backend/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service
	SessionService     *session.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.HandleFunc("/", rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Auth routes
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := r.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Leaderboard routes (listing is public, submitting requires auth)
	r.HandleFunc("/leaderboard", leaderboardHandler.List).Methods(http.MethodGet)
	submitRouter := r.PathPrefix("/leaderboard/submit").Subrouter()
	submitRouter.Use(authMiddleware)
	submitRouter.HandleFunc("", leaderboardHandler.Submit).Methods(http.MethodPost)

	// Session routes; /active must be registered before /{id}
	r.HandleFunc("/sessions/active", sessionHandler.ListActive).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)

	sessionProtected := r.PathPrefix("/sessions").Subrouter()
	sessionProtected.Use(authMiddleware)
	sessionProtected.HandleFunc("/start", sessionHandler.Start).Methods(http.MethodPost)
	sessionProtected.HandleFunc("/{id}/end", sessionHandler.End).Methods(http.MethodPost)
	sessionProtected.HandleFunc("/{id}/update", sessionHandler.Update).Methods(http.MethodPatch)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"message":"Welcome to Neon Snake API"}`))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
