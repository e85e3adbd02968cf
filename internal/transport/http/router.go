package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"likebar/internal/handler"
	"likebar/internal/httputil"
	"likebar/internal/realtime"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	PageHandler     *handler.PageHandler
	LikeHandler     *handler.LikeHandler
	CommentHandler  *handler.CommentHandler
	TenantHandler   *handler.TenantHandler
	RealtimeHandler *realtime.Handler
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/page/init", cfg.PageHandler.Init)
		// Wildcard so page keys may contain slashes (article paths).
		r.Get("/page/*", cfg.PageHandler.Get)
		r.Post("/like", cfg.LikeHandler.Submit)
		r.Post("/comment", cfg.CommentHandler.Submit)
		// Operator-facing tenant provisioning; expose behind your proxy's
		// admin rules.
		r.Post("/tenants", cfg.TenantHandler.Create)
	})

	// Realtime channel: clients join per-page rooms and receive
	// like_update / comment_update events.
	r.Get("/ws", cfg.RealtimeHandler.ServeWS)

	return r
}
