package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riftbook/stats-system/docs"
	"github.com/riftbook/stats-system/handlers"
	"github.com/riftbook/stats-system/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes mounts the full API surface on the given router.
func SetupRoutes(
	router *chi.Mux,
	frontendURL string,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	gameHandler *handlers.GameHandler,
	liveHandler *handlers.LiveHandler,
	logoUploadsEnabled bool,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	allowedOrigins := []string{"*"}
	if frontendURL != "" {
		allowedOrigins = []string{frontendURL}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
		})

		r.Route("/players", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", playerHandler.GetAllPlayers)
			r.Get("/search/{query}", playerHandler.SearchPlayers)
			r.Get("/role/{role}", playerHandler.GetPlayersByRole)
			r.Get("/team/{teamID}", playerHandler.GetPlayersByTeam)
			r.Get("/{playerID}", playerHandler.GetPlayerByID)
			r.Post("/", playerHandler.CreatePlayer)
			r.Post("/batch", playerHandler.CreatePlayers)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", teamHandler.GetAllTeams)
			r.Get("/{teamID}", teamHandler.GetTeamByID)
			r.Post("/", teamHandler.AddTeam)
			r.Put("/{teamID}", teamHandler.UpdateTeam)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
			r.Post("/{teamID}/players", teamHandler.AddPlayerToTeam)
			r.Delete("/{teamID}/players/{playerID}", teamHandler.RemovePlayerFromTeam)
			if logoUploadsEnabled {
				r.Post("/{teamID}/logo", teamHandler.UploadLogo)
			}
		})

		r.Route("/games", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", gameHandler.CreateGame)
			r.Get("/", gameHandler.GetUserGames)
			r.Get("/stats", gameHandler.GetGameStats)
			r.Get("/{gameID}", gameHandler.GetGameByID)
			r.Put("/{gameID}", gameHandler.UpdateGame)
			r.Delete("/{gameID}", gameHandler.DeleteGame)
		})

		r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(docs.OpenAPISpec)
		})
	})

	router.Route("/ws", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Get("/feed", liveHandler.ServeFeed)
	})

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.json"),
	))
}
