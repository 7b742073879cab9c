package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/api"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/auth"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/config"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/db"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/job"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/caption"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.SubtitlePath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Captioning pipeline and job queue
	captionService := caption.NewService(cfg)
	jobQueue := job.NewJobQueue(database.DB())
	jobQueue.RegisterHandler(job.JobCaption, captionService.HandleJob)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, jobQueue, captionService)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Media path: %s", cfg.MediaPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
