// File: campusboard/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusboard/config"
	"campusboard/database/repository"
	"campusboard/handlers"
	"campusboard/routes"
	"campusboard/services/announcement"
	"campusboard/services/auth"
	ai "campusboard/services/intelligence"
	"campusboard/services/storage"
	"campusboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Record store: one JSON document on disk.
	repo := repository.NewJSONRecordRepo(cfg.DBPath)

	// Session store: Redis when configured, in-memory otherwise.
	var sessionStore auth.SessionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisSessionDB,
		})
		sessionStore = auth.NewRedisSessionStore(client)
		logger.Sugar().Infof("using redis session store at %s", cfg.RedisAddr)
	} else {
		sessionStore = auth.NewMemorySessionStore()
	}

	passwordHash, err := auth.ResolvePasswordHash(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to resolve admin password hash: %v", err)
	}
	authService := &auth.DefaultAuthService{
		Repo:         repo,
		Store:        sessionStore,
		Username:     cfg.AdminUsername,
		PasswordHash: passwordHash,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
	}
	if err := authService.Bootstrap(); err != nil {
		logger.Sugar().Fatalf("main: failed to bootstrap seed admin: %v", err)
	}

	// Summarizer: optional; an empty API key runs the board without
	// AI summaries.
	var summarizer ai.Summarizer
	if gemini, err := ai.NewGeminiSummarizer(context.Background(), cfg.GeminiAPIKey); err == nil {
		summarizer = gemini
	} else if !errors.Is(err, ai.ErrUnavailable) {
		logger.Sugar().Warnf("main: summarizer disabled: %v", err)
	}

	// Image store: Cloudinary when configured, local disk otherwise.
	var imageStore storage.ImageStore
	uploadDir := ""
	if cfg.CloudinaryCloudName != "" {
		imageStore, err = storage.NewCloudinaryImageStore(
			cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary image store: %v", err)
		}
	} else {
		localStore, err := storage.NewLocalImageStore(cfg.UploadDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize local image store: %v", err)
		}
		imageStore = localStore
		uploadDir = cfg.UploadDir
	}

	announcementService := &announcement.DefaultAnnouncementService{
		Repo:       repo,
		Summarizer: summarizer,
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &routes.HandlerBundle{
		AuthHandler:         handlers.NewAuthHandler(authService, cfg.SessionTTL, config.IsProduction()),
		AnnouncementHandler: handlers.NewAnnouncementHandler(announcementService, imageStore),
		AuthSvc:             authService,
		LoginRequestsPerMin: cfg.MaxRequestsPerMin,
		UploadDir:           uploadDir,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
