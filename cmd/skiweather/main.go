package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/i474232898/skitrip-forecast/internal/config"
	"github.com/i474232898/skitrip-forecast/internal/pipeline"
	"github.com/i474232898/skitrip-forecast/internal/server"
	"github.com/i474232898/skitrip-forecast/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	st := store.Open(cfg.CacheFile)
	runner := pipeline.New(cfg, st)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	build, err := runner.Run(ctx)
	cancel()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	if err := os.WriteFile(cfg.OutputFile, build.HTML, 0o644); err != nil {
		log.Fatalf("FATAL: write %s: %v", cfg.OutputFile, err)
	}
	log.Printf("written %s (%.1f KB), %d days, cache at %s",
		cfg.OutputFile, float64(len(build.HTML))/1024, len(build.Days), cfg.CacheFile)

	if cfg.ServeAddr == "" {
		return
	}

	srv := server.New(runner, build, cfg.RebuildInterval)
	go func() {
		if err := srv.Listen(cfg.ServeAddr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
