package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/swiss-tournament/docs"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Player    *handlers.PlayerHandler
	Match     *handlers.MatchHandler
	Standings *handlers.StandingsHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// The websocket route must stay outside the timeout middleware.
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(15 * time.Second))

		r.Post("/auth/login", h.Auth.Login)

		r.Route("/players", func(r chi.Router) {
			r.Get("/count", h.Player.CountPlayers)
			r.Post("/", h.Player.RegisterPlayer)
			r.With(adminOnly(opts.JWTSecret)...).Delete("/", h.Player.DeletePlayers)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", h.Match.ReportMatch)
			r.With(adminOnly(opts.JWTSecret)...).Delete("/", h.Match.DeleteMatches)
		})

		r.Get("/standings", h.Standings.GetStandings)
		r.Get("/pairings", h.Standings.GetPairings)
		r.With(adminOnly(opts.JWTSecret)...).Post("/standings/export", h.Standings.ExportStandings)
	})
}

func adminOnly(secret string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.Authenticate(secret),
		middleware.Authorize(services.RoleAdmin),
	}
}
