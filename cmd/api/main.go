package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/containerhub-golang/internal/admission"
	"github.com/01moynul/containerhub-golang/internal/ai"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/collab"
	"github.com/01moynul/containerhub-golang/internal/config"
	"github.com/01moynul/containerhub-golang/internal/database"
	"github.com/01moynul/containerhub-golang/internal/handlers"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/01moynul/containerhub-golang/internal/routes"
)

func main() {
	// 0. --- Configuration (.env, environment, optional config file) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Main Database Connection (Read/Write) ---
	db, dialect, err := database.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to primary database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, dialect); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.New(db, dialect)
	if err := seedAdmin(ctx, repo, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// 2. --- Domain services ---
	policy, err := collab.ParsePolicy(cfg.ApprovalPolicy)
	if err != nil {
		log.Fatalf("Invalid approval policy: %v", err)
	}

	app := &handlers.Handlers{
		Repo:       repo,
		Tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Collabs:    collab.NewService(repo, policy),
		Containers: admission.NewService(repo),
		UploadDir:  cfg.UploadDir,
		BaseURL:    cfg.BaseURL,
	}

	// 3. --- AI assistant (optional, read-only connection) ---
	if cfg.AIEnabled() {
		dbReadOnly, _, err := database.OpenDB(cfg.DBDriver, cfg.DBDSNReadOnly)
		if err != nil {
			log.Fatalf("Failed to connect to AI read-only database: %v", err)
		}
		defer dbReadOnly.Close()

		aiService, err := ai.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, dbReadOnly)
		if err != nil {
			log.Fatalf("Failed to initialize AI Service: %v", err)
		}
		defer aiService.Close()
		app.AIService = aiService
	} else {
		log.Println("AI assistant disabled (GEMINI_API_KEY or DB_DSN_READONLY not set)")
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigin:  cfg.CORSOrigin,
		UploadDir:   cfg.UploadDir,
		DeciderRole: policy.DeciderRole(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	go func() {
		log.Printf("Starting ContainerHub API server on port %s (approval policy: %s)...", cfg.HTTPPort, policy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// seedAdmin creates the administrator account on first start. Public
// registration cannot create admins.
func seedAdmin(ctx context.Context, repo *repository.Repository, email, password string) error {
	if email == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	var pw models.Password
	if err := pw.Set(password); err != nil {
		return err
	}
	admin := &models.User{
		Email:        email,
		PasswordHash: pw.Hash,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return err
	}

	log.Printf("Seeded admin user %s", email)
	return nil
}
