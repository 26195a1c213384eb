package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pwambugu/glassauth/internal/api/handlers"
	"github.com/pwambugu/glassauth/internal/auth"
	"github.com/pwambugu/glassauth/internal/mail"
	"github.com/pwambugu/glassauth/internal/services"
	"github.com/pwambugu/glassauth/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, users services.UserServiceProvider, events services.EventServiceProvider, issuer *auth.TokenIssuer, mailer mail.Mailer, publicURL, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the browser form client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, events, issuer, mailer, publicURL)
	eventHandler := handlers.NewEventHandler(events)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Get("/verify/{token}", authHandler.VerifyEmail)

		// Token-gated endpoints
		r.Group(func(r chi.Router) {
			r.Use(issuer.Middleware())
			r.Get("/dashboard", authHandler.Dashboard)
			r.Get("/events", eventHandler.GetRecent)
			r.Get("/events/ws", wsHandler.Serve)
		})
	})

	return r
}
