package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"ms-booking/internal/auth"
	"ms-booking/internal/catalog"
	catalogapi "ms-booking/internal/catalog/api"
	"ms-booking/internal/config"
	"ms-booking/internal/kafka"
	"ms-booking/internal/ledger"
	ledgerapi "ms-booking/internal/ledger/api"
	"ms-booking/internal/ledger/qr"
	"ms-booking/internal/logger"
	"ms-booking/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	ctx := context.Background()

	// --- Snapshot store ---
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("STORAGE", fmt.Sprintf("Failed to open %s store: %v", cfg.Storage.Driver, err))
	}

	// --- Kafka ---
	var publisher ledger.Publisher = kafka.NoopProducer{}
	if cfg.Kafka.Enabled {
		topics := []string{cfg.Kafka.Topics.BookingCreated, cfg.Kafka.Topics.BookingCancelled}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic setup failed, continuing: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.BookingCreated, cfg.Kafka.Topics.BookingCancelled)
		defer producer.Close()
		publisher = producer
		log.Info("KAFKA", fmt.Sprintf("Publishing booking events to %v", cfg.Kafka.Brokers))
	}

	// --- Stores ---
	eventCatalog := catalog.New(store, log)
	if err := eventCatalog.LoadSnapshot(ctx); err != nil {
		log.Fatal("CATALOG", fmt.Sprintf("Failed to restore catalog: %v", err))
	}
	eventCatalog.SeedIfEmpty()

	bookingLedger := ledger.New(eventCatalog, store, publisher, log)
	if err := bookingLedger.LoadSnapshot(ctx); err != nil {
		log.Fatal("BOOKING", fmt.Sprintf("Failed to restore ledger: %v", err))
	}

	log.Info("STARTUP", fmt.Sprintf("Catalog: %d events, ledger: %d bookings", eventCatalog.Count(), bookingLedger.Count()))

	// --- Handlers ---
	catalogHandler := &catalogapi.Handler{Catalog: eventCatalog}
	ledgerHandler := &ledgerapi.Handler{
		Ledger: bookingLedger,
		QR:     qr.NewGenerator(cfg.Auth.JWTSecret),
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(auth.Middleware(cfg.Auth.JWTSecret))

	r.Get("/api/v1/events", catalogHandler.ListEvents)
	r.Get("/api/v1/events/{eventId}", catalogHandler.GetEvent)

	r.Post("/api/v1/bookings", ledgerHandler.CreateBooking)
	r.Get("/api/v1/bookings/{bookingId}", ledgerHandler.GetBooking)
	r.Get("/api/v1/bookings/{bookingId}/qr", ledgerHandler.BookingQR)
	r.Delete("/api/v1/bookings/{bookingId}", ledgerHandler.CancelBooking)
	r.Get("/api/v1/users/me/bookings", ledgerHandler.UserBookings)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/api/v1/events", catalogHandler.CreateEvent)
		r.Put("/api/v1/events/{eventId}", catalogHandler.UpdateEvent)
		r.Delete("/api/v1/events/{eventId}", catalogHandler.DeleteEvent)
		r.Get("/api/v1/events/{eventId}/bookings", ledgerHandler.EventBookings)
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("STARTUP", fmt.Sprintf("Booking service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("STARTUP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SHUTDOWN", "Shutdown signal received")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("SHUTDOWN", fmt.Sprintf("Server forced to shutdown: %v", err))
	}
	log.Info("SHUTDOWN", "Server exited gracefully")
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("STORAGE", fmt.Sprintf("Using redis snapshots at %s", cfg.Redis.Addr))
		return storage.NewRedisStore(client, cfg.Redis.Prefix), nil
	case "sqlite":
		store, err := storage.NewBunStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("STORAGE", fmt.Sprintf("Using sqlite snapshots at %s", cfg.Storage.SQLitePath))
		return store, nil
	default:
		store, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		log.Info("STORAGE", fmt.Sprintf("Using file snapshots in %s", cfg.Storage.Dir))
		return store, nil
	}
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.LogAPI(r.Method, r.URL.Path, "done", time.Since(start).String())
		})
	}
}
