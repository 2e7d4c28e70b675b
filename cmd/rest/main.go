package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"admin-chatbot-be/internal/bootstrap"
	"admin-chatbot-be/internal/config"
	"admin-chatbot-be/internal/server"
	"admin-chatbot-be/internal/tracer"
	"admin-chatbot-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Stores are opened lazily by the registry and shared afterwards
	registry := database.NewRegistry(cfg.Database.Connection, cfg.Database.SourceConnection)

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, registry, cfg)
	if err != nil {
		registry.Close()
		log.Fatalf("bootstrap: %v", err)
	}
	defer container.Close()

	shutdownTracer := tracer.InitTracer(ctx, container.Logger)

	srv := server.New(cfg, container)

	g, gctx := errgroup.WithContext(ctx)

	if container.ConsumerService != nil {
		g.Go(func() error {
			return container.ConsumerService.Consume(gctx)
		})
	}

	g.Go(srv.Run)

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracer(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		container.Logger.Error("MAIN", "Server stopped with error", map[string]interface{}{"error": err.Error()})
	}
}
