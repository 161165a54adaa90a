package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"permeability-service/internal/adapters/primary/http/handlers"
	"permeability-service/internal/adapters/primary/http/middleware"
	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/adapters/secondary/memory"
	"permeability-service/internal/adapters/secondary/postgres"
	"permeability-service/internal/adapters/secondary/reference"
	"permeability-service/internal/adapters/secondary/xgboost"
	"permeability-service/internal/config"
	"permeability-service/internal/core/domain"
	ports "permeability-service/internal/core/ports/output"
	"permeability-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	style, err := view.LoadPresentation(cfg.Presentation.Path)
	if err != nil {
		log.Fatalf("load presentation: %v", err)
	}
	tmpl, err := view.Templates()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	// The model is loaded once; a bad artifact stops startup.
	model, err := xgboost.LoadArtifact(cfg.Model.Path, domain.FeatureSchema)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	log.WithFields(log.Fields{
		"path":    cfg.Model.Path,
		"booster": model.Kind(),
		"trees":   model.Trees(),
	}).Info("model loaded")

	strategy, err := domain.ParseMergeStrategy(cfg.Reference.MergeStrategy)
	if err != nil {
		log.Fatalf("merge strategy %q: %v", cfg.Reference.MergeStrategy, err)
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	refSource := reference.NewCSVSource(cfg.Reference.Path)

	var (
		sessionRepo ports.UploadSessionRepository
		pool        *pgxpool.Pool
		stopSweep   func()
	)
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		pool = openPool(cfg)
		defer pool.Close()
		sessionRepo = postgres.NewUploadSessionRepository(pool, cfg.Session.TTL)
		stopSweep = purgeLoop(pool, cfg.Session.TTL)
	default:
		mem := memory.NewUploadSessionRepository(cfg.Session.TTL, sweepInterval)
		sessionRepo = mem
		stopSweep = mem.Close
	}
	log.Infof("session store: %s", cfg.Session.Store)

	// Core Services
	mergeSvc := services.NewMergeService(refSource, strategy)
	predictionSvc := services.NewPredictionService(model, mergeSvc)
	sessionSvc := services.NewSessionService(sessionRepo, predictionSvc)

	// Primary Adapter
	h := handlers.New(sessionSvc, predictionSvc, style, cfg.Upload.MaxBytes)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	h.RegisterRoutes(&router.RouterGroup)

	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"booster":        model.Kind(),
			"trees":          model.Trees(),
			"merge_strategy": mergeSvc.Strategy(),
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}
	stopSweep()

	log.Info("server stopped")
}

func openPool(cfg *config.Config) *pgxpool.Pool {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := postgres.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Info("database connection established")
	return pool
}

// purgeLoop deletes expired sessions until the returned stop func is called.
func purgeLoop(pool *pgxpool.Pool, ttl time.Duration) func() {
	if ttl <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := postgres.PurgeExpired(ctx, pool, ttl)
				if err != nil {
					log.WithError(err).Warn("purge expired sessions failed")
					continue
				}
				log.Debugf("purged %d expired sessions", n)
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
