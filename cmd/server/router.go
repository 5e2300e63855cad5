package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/getapet/server/internal/api"
)

// routes builds the router with all middleware, the API endpoints and the
// static image file server.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The web client is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authHandler := api.NewAuthHandler(app.service, app.logger)
	adHandler := api.NewAdHandler(app.service, app.images, app.logger)
	favoriteHandler := api.NewFavoriteHandler(app.service, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Put("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Get("/get_all_ads", adHandler.GetAllAds)
		r.Get("/get_user_ads", adHandler.GetUserAds)
		r.Get("/get_user_favorites_ads", adHandler.GetUserFavoritesAds)
		r.Put("/create_new_ad", adHandler.CreateAd)
		r.Delete("/delete_ad", adHandler.DeleteAd)

		r.Put("/add_ads_to_favorites", favoriteHandler.Add)
		r.Delete("/delete_ad_from_favorites", favoriteHandler.Remove)
	})

	// Uploaded ad images are served straight from disk.
	r.Handle(app.config.Images.PublicPrefix+"*",
		http.StripPrefix(app.config.Images.PublicPrefix,
			http.FileServer(http.Dir(app.config.Images.Dir))))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
