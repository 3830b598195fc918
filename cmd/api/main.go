package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/firebaseapp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
)

// backend is a storage implementation that also keeps notifications and
// the audit trail.
type backend interface {
	routes.Store
	audit.Store
	notification.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Firebase (Firestore backend and/or FCM push)
	// --------------------------------------------------
	var fb *firebaseapp.Clients
	if cfg.FirebaseProjectID != "" {
		clients, err := firebaseapp.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = clients.Close() }()
		fb = clients
	}

	// --------------------------------------------------
	// Storage
	// --------------------------------------------------
	var store backend
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return err
		}
		store = repository.NewAppointmentGormRepository(db)
	case config.BackendFirestore:
		store = repository.NewAppointmentFirestoreRepository(fb.Firestore)
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		store = repository.NewMemoryRepository()
	}
	log.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	// --------------------------------------------------
	// Booking lock
	// --------------------------------------------------
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		locker = lock.NewRedisLocker(client, cfg.BookingLockTTL, log)
		log.Info("booking lock backed by redis")
	}

	// --------------------------------------------------
	// Notifications
	// --------------------------------------------------
	sinks := notification.MultiSink{notification.NewStoreSink(store)}
	if fb != nil && fb.Messaging != nil {
		sinks = append(sinks, notification.NewFCMSink(store, fb.Messaging))
	}
	if cfg.KafkaBrokers != "" {
		writer := notification.NewKafkaWriter(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaNotificationsTopic)
		defer func() { _ = writer.Close() }()
		sinks = append(sinks, notification.NewKafkaSink(writer))
	}
	notifier := notification.NewDispatcher(sinks, cfg.NotificationQueueSize, log)

	auditDispatcher := audit.NewDispatcher(audit.New(store), log)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		Store:    store,
		Locker:   locker,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Metrics:  metrics.New(),
		Log:      log,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Warn("notification queue not drained", zap.Error(err))
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}

	return nil
}
