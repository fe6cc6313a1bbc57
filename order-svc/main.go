package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tableside/config"
	httpapi "tableside/order-svc/internal/api/http"
	"tableside/order-svc/internal/notifier"
	"tableside/order-svc/internal/service"
	"tableside/order-svc/internal/storage"

	"go.uber.org/zap"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := config.NewLogger(settings)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(settings, logger)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	rdb := config.MustInitRedis(settings, logger)
	defer rdb.Close()

	writer := config.NewKafkaWriter(settings, logger)
	defer writer.Close()

	hub := notifier.NewHub(logger)
	defer hub.Close()
	relay := notifier.NewRedisRelay(storage.NewRedisStatusChannel(rdb), hub, logger)
	relayDone, err := relay.Start(ctx, 5*time.Second)
	if err != nil {
		logger.Fatal("Failed to start status relay", zap.Error(err))
	}
	go func() {
		if err := <-relayDone; err != nil {
			logger.Error("Status relay stopped", zap.Error(err))
		}
	}()

	tables := service.NewTableQR(settings.PublicBaseURL, settings.QRSecret, settings.QRTokenTTL)
	catalog := service.NewCatalogService(repo, storage.NewRedisCache(rdb, settings.MenuCacheTTL), logger)
	orders := service.NewOrderService(repo, relay, relay, storage.NewKafkaPublisher(writer, settings.EventTimeout), tables, logger)
	board := service.NewBoardService(repo, settings.HistoryLimit)

	handler := httpapi.NewHandler(catalog, orders, board, tables, logger)
	server := httpapi.NewServer(":"+settings.HTTPPort, httpapi.NewRouter(handler, logger))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Order Service starting",
		zap.String("port", settings.HTTPPort),
		zap.Bool("signed_table_links", tables.Signed()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
