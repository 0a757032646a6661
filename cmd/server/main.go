package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/erpbase/internal/category"
	"github.com/example/erpbase/internal/config"
	"github.com/example/erpbase/internal/customer"
	"github.com/example/erpbase/internal/db"
	"github.com/example/erpbase/internal/events"
	httpapi "github.com/example/erpbase/internal/http"
	"github.com/example/erpbase/internal/order"
	"github.com/example/erpbase/internal/product"
	"github.com/example/erpbase/internal/supplier"
	"github.com/example/erpbase/internal/user"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[erp-backend] ", log.LstdFlags|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.DSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// --- Events (optional) ---
	var publisher *events.Publisher
	if cfg.Events.AMQPURL != "" {
		conn, err := events.Dial(cfg.Events.AMQPURL)
		if err != nil {
			logger.Fatalf("rabbitmq connect: %v", err)
		}
		defer conn.Close()

		publisher, err = events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer publisher.Close()
	}

	// --- HTTP ---
	deps := httpapi.Deps{
		Logger:       logger,
		JWT:          &cfg.JWT,
		AuthRequired: cfg.Auth.Required,
		Orders:       order.NewPostgresRepository(pool),
		Customers:    customer.NewPostgresRepository(pool),
		Suppliers:    supplier.NewPostgresRepository(pool),
		Categories:   category.NewPostgresRepository(pool),
		Products:     product.NewPostgresRepository(pool),
		Users:        user.NewPostgresRepository(pool),
	}
	if publisher != nil {
		deps.OrderEvents = publisher
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
