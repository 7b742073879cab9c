package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/api/handlers"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/api/middleware"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/auth"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/config"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/db"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/job"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/caption"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, jobQueue *job.JobQueue, captionService *caption.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	filesHandler := handlers.NewFilesHandler(cfg.MediaPath)
	subtitleHandler := handlers.NewSubtitleHandler(cfg.MediaPath, cfg.SubtitlePath)
	captionHandler := handlers.NewCaptionHandler(cfg.MediaPath, database, jobQueue, captionService)
	jobHandler := handlers.NewJobHandler(jobQueue)
	settingsHandler := handlers.NewSettingsHandler(database)
	presetsHandler := handlers.NewPresetsHandler(database)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(1 << 20)) // 1MB

		// Public routes
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.With(loginLimiter.Handler).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Files
			r.Get("/files/tree", filesHandler.GetTree)
			r.Get("/files/tree/*", filesHandler.GetTree)
			r.Get("/files/info/*", filesHandler.GetInfo)
			r.Get("/files/search", filesHandler.Search)

			// Subtitles
			r.Get("/subtitle/list/*", subtitleHandler.ListSubtitles)
			r.Get("/subtitle/content/*", subtitleHandler.ServeSubtitle)
			r.Get("/subtitle/download", subtitleHandler.DownloadSubtitle)

			// Captioning
			r.Get("/caption/engines", captionHandler.Engines)
			r.Post("/caption/generate/*", captionHandler.Generate)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)

			// Presets
			r.Get("/presets", presetsHandler.ListPresets)
			r.Post("/presets", presetsHandler.CreatePreset)
			r.Put("/presets/{id}", presetsHandler.UpdatePreset)
			r.Delete("/presets/{id}", presetsHandler.DeletePreset)

			// Settings (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
