package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/leaderboard"
	"perftrack/internal/domain/notifications"
	"perftrack/internal/domain/rating"
	"perftrack/internal/domain/reports"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
	"perftrack/internal/platform/email"
	"perftrack/internal/platform/metrics"
	audithandler "perftrack/internal/transport/http/handlers/audit"
	authhandler "perftrack/internal/transport/http/handlers/auth"
	goalshandler "perftrack/internal/transport/http/handlers/goals"
	leaderboardhandler "perftrack/internal/transport/http/handlers/leaderboard"
	notificationshandler "perftrack/internal/transport/http/handlers/notifications"
	ratingshandler "perftrack/internal/transport/http/handlers/ratings"
	reportshandler "perftrack/internal/transport/http/handlers/reports"
	"perftrack/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)
	ratingSvc := rating.NewService(rating.NewStore(pool))
	goalsSvc := goals.NewService(goals.NewStore(pool))
	leaderboardStore := leaderboard.NewStore(pool)
	leaderboardSvc := leaderboard.NewService(leaderboardStore)
	reportsSvc := reports.New(leaderboardStore)
	auditSvc := audit.New(pool)
	notifySvc := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailFrom)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitWindow))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc).RegisterRoutes(r)
		ratingshandler.NewHandler(ratingSvc, notifySvc, auditSvc).RegisterRoutes(r)
		goalshandler.NewHandler(goalsSvc, auditSvc).RegisterRoutes(r)
		leaderboardhandler.NewHandler(leaderboardSvc, collector).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	log.Printf("perftrack server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
