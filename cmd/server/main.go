package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"carteirab3/internal/api"
	"carteirab3/internal/auth"
	"carteirab3/internal/config"
	"carteirab3/internal/database"
	"carteirab3/internal/repository"
	"carteirab3/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	codec, err := auth.NewTokenCodec(cfg.Session.Key, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize session codec: %v", err)
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	proventoRepo := repository.NewProventoRepository(db)
	movimentacaoRepo := repository.NewMovimentacaoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(usuarioRepo, codec)
	importService := service.NewImportService(db, portfolioRepo, proventoRepo, movimentacaoRepo)
	reviewService := service.NewReviewService(portfolioRepo, proventoRepo, movimentacaoRepo, categoriaRepo)
	dashboardService := service.NewDashboardService(portfolioRepo, proventoRepo)
	categoriaService := service.NewCategoriaService(categoriaRepo)

	if err := authService.SeedAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Purge expired sessions hourly
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", authService.PurgeExpiredSessions); err != nil {
		log.Fatalf("Failed to schedule session purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Auth:      authService,
		Import:    importService,
		Review:    reviewService,
		Dashboard: dashboardService,
		Categoria: categoriaService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
