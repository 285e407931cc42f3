package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/config"
	"github.com/kulhudhufushidive/site-server/internal/database"
	"github.com/kulhudhufushidive/site-server/internal/handler"
	"github.com/kulhudhufushidive/site-server/internal/jobs"
	"github.com/kulhudhufushidive/site-server/internal/media"
	"github.com/kulhudhufushidive/site-server/internal/metrics"
	"github.com/kulhudhufushidive/site-server/internal/middleware"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/redis"
	"github.com/kulhudhufushidive/site-server/internal/repository"
	"github.com/kulhudhufushidive/site-server/internal/service"
	"github.com/kulhudhufushidive/site-server/internal/sse"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	contentStore, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open content store")
	}
	defer closeStore()

	mediaStorage, err := openMediaStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open media storage")
	}

	messageStore, closeMessages, err := openMessageStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open message store")
	}
	defer closeMessages()

	contentBus := bus.New()
	broker := sse.NewBroker(contentBus)
	defer broker.Close()

	heroRepo := repository.NewContent(contentStore, contentBus, store.KeyHeroContent, bus.TopicHeroUpdated, model.DefaultHeroContent)
	siteRepo := repository.NewContent(contentStore, contentBus, store.KeySiteContent, bus.TopicSiteContentUpdated, model.DefaultSiteContent)
	contactInfoRepo := repository.NewContent(contentStore, contentBus, store.KeyContactInfo, bus.TopicContactInfoUpdated, model.DefaultContactInfo)
	servicesRepo := repository.NewServicesRepository(contentStore, contentBus)
	mediaRepo := repository.NewMediaRepository(contentStore, contentBus, mediaStorage)
	selectionRepo := repository.NewSelectionRepository(contentStore, contentBus)

	authService := service.NewAuthService(contentStore, service.AuthConfig{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL(),
	})

	sessionMiddleware := middleware.NewSessionMiddleware(authService)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL(), isProduction)
	contentHandler := handler.NewContentHandler(heroRepo, siteRepo, contactInfoRepo, mediaRepo)
	servicesHandler := handler.NewServicesHandler(servicesRepo, selectionRepo)
	mediaHandler := handler.NewMediaHandler(mediaRepo)
	contactHandler := handler.NewContactHandler(messageStore)
	eventsHandler := handler.NewEventsHandler(broker)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(securityHeadersMiddleware.Handler)
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// The event stream stays open; no request timeout on it.
		r.Get("/events", eventsHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
			r.Mount("/content", contentHandler.PublicRoutes())
			r.Get("/carousel", contentHandler.Carousel)
			r.Mount("/services", servicesHandler.PublicRoutes())
			r.Post("/contact", contactHandler.Submit)
		})
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.Handler)
			r.Mount("/content", contentHandler.AdminRoutes())
			r.Mount("/services", servicesHandler.AdminRoutes())
			r.Mount("/media", mediaHandler.Routes())
			r.Mount("/messages", contactHandler.AdminRoutes())
		})
	})

	if cfg.MediaBackend == "disk" {
		mediaPrefix := "/images/media/"
		r.Handle(mediaPrefix+"*", http.StripPrefix(mediaPrefix, http.FileServer(http.Dir(cfg.MediaDir))))
	}

	r.NotFound(handler.NewSPAHandler(cfg.StaticDir).ServeHTTP)

	cleanupJob := jobs.NewCleanupJob(authService, selectionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		// SSE connections stay open; no write timeout.
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("redis connected")
		return store.NewRedisStore(client), func() { client.Close() }, nil
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	default:
		fs, err := store.NewFileStore(filepath.Join(cfg.DataDir, "kv"))
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

func openMediaStorage(cfg *config.Config) (media.Storage, error) {
	if cfg.MediaBackend == "s3" {
		return media.NewS3Storage(context.Background(), media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	}
	return media.NewDiskStorage(cfg.MediaDir, "/images/media")
}

func openMessageStore(cfg *config.Config) (repository.MessageStore, func(), error) {
	if cfg.MessagesBackend == "postgres" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Msg("database connected")

		ms, err := repository.NewPostgresMessageStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return ms, func() { db.Close() }, nil
	}

	ms, err := repository.NewFileMessageStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return ms, func() {}, nil
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
