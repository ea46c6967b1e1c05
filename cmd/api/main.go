package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rts-backend/internal/admin"
	"rts-backend/internal/auth"
	"rts-backend/internal/casestudies"
	"rts-backend/internal/config"
	"rts-backend/internal/middleware"
	"rts-backend/internal/storage"
	"rts-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		// the catalog still works from memory; writes fail and are logged
		logger.Error("storage unavailable, running without persistence", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		backend = &storage.Opened{Store: storage.Unavailable{}, Close: func() error { return nil }}
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("storage close error", slog.String("error", err.Error()))
		}
	}()

	repo := casestudies.NewRepository(backend.Store, cfg.CatalogKey, logger)
	store := casestudies.NewStore(repo, logger, casestudies.Options{
		PersistDebounce: cfg.PersistDebounce,
		LoadTimeout:     cfg.LoadTimeout,
	})
	store.Load(ctx)

	homepage := casestudies.NewHomepage(repo, logger)
	detach := homepage.Attach(store)
	defer detach()

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if backend.Watcher != nil {
		if err := homepage.Watch(watchCtx, backend.Watcher, cfg.CatalogKey); err != nil {
			logger.Warn("homepage watch disabled", slog.String("error", err.Error()))
		}
	}

	var adminManager *admin.Manager
	if cfg.JWTSecret != "" && cfg.AdminPassword != "" {
		adminManager, err = admin.NewManager(cfg.AdminUser, cfg.AdminPassword, &auth.Manager{
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.SessionTokenTTL,
			Issuer: "rts-backend",
		})
		if err != nil {
			logger.Error("admin auth setup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("admin login enabled", slog.String("user", cfg.AdminUser))
	} else {
		logger.Info("admin login disabled")
	}

	// avoid a typed nil inside the interface
	var sessions middleware.SessionAuthenticator
	if adminManager != nil {
		sessions = adminManager
	}

	val := validation.New()
	adminHandler := admin.NewHandler(adminManager, val, logger, cfg.SessionTokenTTL, cfg.CookieSecure)
	caseStudiesHandler := casestudies.NewHandler(store, homepage, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitLogin, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	requireAdmin := middleware.AdminAuth(cfg.AdminAPIKey, sessions)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/case-studies", caseStudiesHandler.PublicList)
		api.Get("/case-studies/homepage", caseStudiesHandler.Homepage)
		api.Get("/case-studies/{id}", caseStudiesHandler.PublicGet)

		api.Route("/admin", func(adm chi.Router) {
			adm.With(loginLimiter.Middleware).Post("/login", adminHandler.Login)
			adm.Post("/logout", adminHandler.Logout)
			adm.Get("/session", adminHandler.Session)

			// chi: middlewares must be attached before routes, so the
			// protected routes live in their own group.
			adm.Group(func(protected chi.Router) {
				protected.Use(requireAdmin)
				protected.Delete("/session/draft", adminHandler.CloseDraft)
				protected.Get("/case-studies", caseStudiesHandler.AdminList)
				protected.Get("/case-studies/form", caseStudiesHandler.AdminNewForm)
				protected.Get("/case-studies/{id}/form", caseStudiesHandler.AdminEditForm)
				protected.Post("/case-studies", caseStudiesHandler.AdminCreate)
				protected.Put("/case-studies/{id}", caseStudiesHandler.AdminUpdate)
				protected.Patch("/case-studies/{id}", caseStudiesHandler.AdminPatch)
				protected.Delete("/case-studies/{id}", caseStudiesHandler.AdminDelete)
				protected.Post("/case-studies/{id}/homepage", caseStudiesHandler.AdminToggleHomepage)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	if err := store.Flush(shutdownCtx); err != nil {
		logger.Error("catalog flush on shutdown failed", slog.String("error", err.Error()))
	}
}
