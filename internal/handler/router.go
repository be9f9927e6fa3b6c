package handler

import (
	"net/http"

	"github.com/Dan9191/finance-insights/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RouterConfig holds the security settings of the router
type RouterConfig struct {
	JWTSecret      string
	AdminKeyHash   string
	AllowedOrigins []string
}

// NewRouter wires the routes and middleware
func NewRouter(h *Handler, cfg RouterConfig, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodOptions)

	// Query routes, token-protected when a secret is configured
	queryRouter := r.PathPrefix("/query").Subrouter()
	queryRouter.Use(middleware.AuthMiddleware(cfg.JWTSecret, log))
	queryRouter.HandleFunc("", h.Query).Methods(http.MethodPost, http.MethodOptions)

	// Admin routes exist only when a key hash is configured
	if cfg.AdminKeyHash != "" {
		adminRouter := r.PathPrefix("/admin").Subrouter()
		adminRouter.Use(middleware.AdminKeyMiddleware(cfg.AdminKeyHash, log))
		adminRouter.HandleFunc("/reload", h.Reload).Methods(http.MethodPost)
	}

	return r
}
