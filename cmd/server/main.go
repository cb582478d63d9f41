package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruitai/internal/app"
	"recruitai/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	initCtx, initCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	c, err := app.NewContainer(initCtx, cfg, logger)
	initCancel()
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	bootstrap, cleanup := app.Bootstrap(runCtx, c)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Printf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
	}
}
