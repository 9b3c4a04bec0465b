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

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/song-critic/internal/application"
	"github.com/bryanwahyu/song-critic/internal/application/analyses"
	"github.com/bryanwahyu/song-critic/internal/application/sessions"
	"github.com/bryanwahyu/song-critic/internal/config"
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	"github.com/bryanwahyu/song-critic/internal/infra/ai/gemini"
	openaiclient "github.com/bryanwahyu/song-critic/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/song-critic/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/song-critic/internal/infra/db/postgres"
	"github.com/bryanwahyu/song-critic/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/song-critic/internal/infra/storage"
	"github.com/bryanwahyu/song-critic/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// analyzer: a missing API key disables analysis but not the server
	var analyzer domain.Analyzer = domain.Disabled{}
	if cfg.AnalysisEnabled() {
		switch cfg.AI.Provider {
		case "openai":
			analyzer = openaiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model)
		case "gemini":
			analyzer, err = gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
			if err != nil {
				log.Fatalf("gemini init error: %v", err)
			}
		default:
			log.Fatalf("unknown ai provider: %s", cfg.AI.Provider)
		}
	} else {
		log.Printf("no AI API key configured, analysis requests will be refused")
	}

	// history store is optional
	var repo domain.Repository
	checkers := map[string]middleware.HealthChecker{}
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewAnalysisRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewAnalysisRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "":
		log.Printf("no database configured, history is disabled")
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}

	// export upload store is optional
	var artifacts domain.ArtifactStore
	if cfg.UploadsEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = store
	}

	svc := &analyses.Service{
		Analyzer:  analyzer,
		Repo:      repo,
		Artifacts: artifacts,
		Clock:     application.SystemClock{},
	}
	sess := sessions.NewService(svc)

	users := make(map[string]middleware.Identity, len(cfg.Auth.Users))
	for _, u := range cfg.Auth.Users {
		users[u.Key] = middleware.Identity{ID: u.ID, Name: u.Name}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.OptionalAuth(users))
	mux.Use(middleware.RateLimitMiddleware(30, 1))
	mux.Mount("/", httpserver.NewRouter(svc, sess, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
