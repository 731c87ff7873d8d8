// main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/config"
	"marketplace-backend/internal/handlers"
	"marketplace-backend/internal/logger"
	"marketplace-backend/internal/router"
	"marketplace-backend/internal/storage"
	"marketplace-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
	log.Info("Server exited")
}

// run owns every resource opened after startup, so its defers run on any exit path.
func run(cfg *config.Configuration, log *logrus.Logger) error {
	client, err := store.NewMongoConnection(store.MongoConfig{
		URI:     cfg.MongoURI,
		DBName:  cfg.MongoDatabase,
		Timeout: cfg.MongoTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}()
	db := client.Database(cfg.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	bucket, err := storage.NewBucket(context.Background(), storage.BucketConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsPath: cfg.FirebaseCredentialsPath,
		Bucket:          cfg.StorageBucket,
		PublicBaseURL:   cfg.StoragePublicBaseURL,
	})
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.JwtSecret, cfg.JwtTTL)

	engine := router.New(handlers.Deps{
		Users:           store.NewMongoUserStore(db),
		Shops:           store.NewMongoShopStore(db),
		Categories:      store.NewMongoCategoryStore(db),
		Products:        store.NewMongoProductStore(db),
		Carts:           store.NewMongoCartStore(db),
		Orders:          store.NewMongoOrderStore(db),
		Uploader:        storage.NewUploader(bucket),
		Tokens:          tokens,
		Log:             log,
		ProductPageSize: cfg.ProductPageSize,
	}, router.Options{
		Tokens:           tokens,
		MaxFileSize:      cfg.UploadMaxFileSize,
		CorsOrigins:      cfg.Origins(),
		AllowCredentials: cfg.CorsAllowCredentials,
		Log:              log,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Address).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server")
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	return nil
}
