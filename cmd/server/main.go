package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmadqo/certitrust/internal/config"
	"github.com/ahmadqo/certitrust/internal/database"
	"github.com/ahmadqo/certitrust/internal/handler"
	"github.com/ahmadqo/certitrust/internal/render"
	"github.com/ahmadqo/certitrust/internal/repository"
	"github.com/ahmadqo/certitrust/internal/service"
	"github.com/ahmadqo/certitrust/internal/utils"
)

func main() {
	cfg := config.Load()

	// ── Database ───────────────────────────────────────
	db := database.Connect(&cfg.Database)
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	log.Printf("Running migrations from: %s", migrationsPath)
	if err := database.RunMigrations(db, migrationsPath); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seeder := database.NewSeeder(db)
	if err := seeder.SeedAdminUser(context.Background()); err != nil {
		log.Printf("Warning: seed failed: %v", err)
	}
	if err := seeder.SeedSystemConfig(context.Background()); err != nil {
		log.Printf("Warning: seed config failed: %v", err)
	}

	// ── Storage (MinIO) ────────────────────────────────
	storage, err := utils.NewStorageService(&cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	log.Println("MinIO connected successfully")

	// ── Render engine ──────────────────────────────────
	fonts, err := render.NewFontRegistry()
	if err != nil {
		log.Fatalf("Failed to load fallback fonts: %v", err)
	}
	if cfg.Render.FontsDir != "" {
		if err := fonts.LoadDir(cfg.Render.FontsDir); err != nil {
			log.Printf("Warning: font dir not loaded: %v", err)
		}
	}
	renderer := render.NewRenderer(fonts, cfg.App.PublicURL)

	// ── Repositories ───────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// ── Services ───────────────────────────────────────
	authService := service.NewAuthService(userRepo, cfg)
	templateService := service.NewTemplateService(templateRepo, storage)
	certificateService := service.NewCertificateService(
		certificateRepo, templateRepo, configRepo, storage, renderer, cfg.App.PublicURL)
	configService := service.NewConfigService(configRepo)

	// ── Handlers ───────────────────────────────────────
	authHandler := handler.NewAuthHandler(authService)
	templateHandler := handler.NewTemplateHandler(templateService, certificateService, cfg.Render.PreviewScale)
	certificateHandler := handler.NewCertificateHandler(
		certificateService, cfg.Render.PreviewScale, cfg.Render.DownloadScale)
	configHandler := handler.NewConfigHandler(configService)

	// ── Router ─────────────────────────────────────────
	router := handler.NewRouter(
		authHandler,
		templateHandler,
		certificateHandler,
		configHandler,
		cfg.JWT.Secret,
	)

	// ── HTTP Server ────────────────────────────────────
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Server berjalan di port %s (mode: %s)", cfg.App.Port, cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
