package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordsteps/authoring-service/internal/assets"
	"github.com/wordsteps/authoring-service/internal/cache"
	"github.com/wordsteps/authoring-service/internal/config"
	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/handlers"
	"github.com/wordsteps/authoring-service/internal/services"
	"github.com/wordsteps/authoring-service/internal/uploader"
	"github.com/wordsteps/authoring-service/internal/utils"
	"github.com/wordsteps/authoring-service/internal/validator"
	"github.com/wordsteps/authoring-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var log utils.Logger
	if cfg.Environment == "development" {
		log = utils.NewDevelopmentLogger()
	} else {
		log = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	}
	slogger := utils.ToSlogLogger(log)

	// Cache: redis when reachable, in-process fallback otherwise.
	var cacheService cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		log.Warn("redis unavailable, using in-memory cache", "error", err)
		cacheService = cache.NewMemoryCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	// Media storage
	var up editor.Uploader
	switch cfg.Storage.Provider {
	case "minio":
		minioClient, err := pkg.NewMinioClient(&cfg.Storage)
		if err != nil {
			log.Error("failed to init minio client", "error", err)
			os.Exit(1)
		}
		up = uploader.NewMinioUploader(minioClient, cfg.Storage.MinioBucket, slogger)
	default:
		up = uploader.NewLocalUploader(cfg.Storage.LocalPath, slogger)
	}

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Error("failed to init event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	resolver := assets.NewResolver(cfg.AssetBaseURL)
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute

	editingService := services.NewEditingService(up, cacheService, resolver, publisher, v, slogger, sessionTTL)
	exportService := services.NewExportService(publisher, slogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(log))

	handlerManager := handlers.NewHandlerManager(editingService, exportService, v, log)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("starting authoring service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
