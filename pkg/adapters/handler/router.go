package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ArthurB95/linklink/pkg/config"
	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// NewRouter wires the gateway routes. The bare `/{handle}` route is the
// entry point for both short links and bio pages; specific patterns
// (healthz, auth, preview) take precedence under ServeMux matching.
func NewRouter(cfg *config.Config, resolver *services.HandleResolver, client ports.BackendClient, log *zap.Logger) http.Handler {
	h := NewProfileHandler(resolver, client, cfg.APIBaseURL, log)
	mw := NewMiddleware(cfg)
	authHandler := NewAuthHandler(cfg, log)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.HandleFunc("GET /{handle}", h.Resolve)
	mux.HandleFunc("GET /{handle}/qr.png", h.QRImage)
	mux.HandleFunc("POST /{handle}/links/{id}/click", h.TrackClick)
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Protected Routes (owner preview)
	previewMux := http.NewServeMux()
	previewMux.HandleFunc("GET /preview/{handle}", h.Preview)
	mux.Handle("/preview/", mw.RequireSession(previewMux))

	return mux
}
