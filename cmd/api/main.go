package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/archive"
	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/cache"
	"github.com/BruksfildServices01/salon-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-admin/internal/db"
	"github.com/BruksfildServices01/salon-admin/internal/db/migrations"
	infraRepo "github.com/BruksfildServices01/salon-admin/internal/infra/repository"
	"github.com/BruksfildServices01/salon-admin/internal/routes"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	configureLogger(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := dbpkg.RunMigrations(ctx, cfg.DBUrl.Value(), log, migrations.FS); err != nil {
			log.WithError(err).Fatal("failed to migrate")
		}
	}

	db, err := dbpkg.NewDB(cfg.DBUrl.Value(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	if err := dbpkg.Seed(ctx, db, dbpkg.SeedAdmin{
		Email:    cfg.SeedAdminEmail,
		Username: cfg.SeedAdminUsername,
		Password: cfg.SeedAdminPassword.Value(),
	}, log); err != nil {
		log.WithError(err).Fatal("failed to seed")
	}

	// ======================================================
	// PERMISSIONS
	// ======================================================
	var permCache auth.PermissionCache
	if url := cfg.RedisURL.Value(); url != "" {
		client, err := cache.Connect(ctx, url)
		if err != nil {
			log.WithError(err).Fatal("failed to connect redis")
		}
		defer client.Close()
		permCache = cache.NewPermissionCache(client, cfg.PermissionCacheTTL)
		log.Info("permission cache enabled")
	}
	resolver := auth.NewPermissionResolver(db, permCache, log)

	// ======================================================
	// AUDIT
	// ======================================================
	var wg sync.WaitGroup
	workers, cancelWorkers := context.WithCancel(context.Background())

	tracker := audit.NewTracker(
		audit.NewChangeLogger(db),
		audit.NewSnapshotRecorder(db, infraRepo.NewAppointmentGormRepository(db)),
		log,
	)
	var sink audit.Sink = tracker
	if cfg.AuditMode == config.AuditModeAsync {
		dispatcher := audit.NewDispatcher(tracker, cfg.AuditQueueSize, log)
		sink = dispatcher
		wg.Add(1)
		go func() {
			defer wg.Done()
			dispatcher.Run(workers)
		}()
		log.WithField("queue_size", cfg.AuditQueueSize).Info("async audit dispatcher started")
	}

	reader := audit.NewReader(db, log)

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    sink,
		Reader:   reader,
		Resolver: resolver,
	}

	if cfg.ArchiveEnabled() {
		exporter := archive.NewExporter(reader, archive.NewS3Uploader(archive.S3Options{
			Region:    cfg.ArchiveRegion,
			Endpoint:  cfg.ArchiveEndpoint,
			AccessKey: cfg.ArchiveAccessKey,
			SecretKey: cfg.ArchiveSecretKey.Value(),
		}), cfg.ArchiveBucket, cfg.ArchivePrefix, log)
		deps.Archiver = exporter

		if cfg.ArchiveInterval > 0 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				exporter.Run(workers, cfg.ArchiveInterval)
			}()
		}
		log.WithField("bucket", cfg.ArchiveBucket).Info("change log archive enabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	// handlers are done; let the dispatcher drain
	cancelWorkers()
	wg.Wait()
	log.Info("server shut down")
}

func configureLogger(log *logrus.Logger, cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
