// Package server exposes the last successful build over HTTP and schedules
// periodic rebuilds. The report output is identical to the one-shot artifact;
// serving it is a convenience layer over the same pipeline.
package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/skitrip-forecast/internal/pipeline"
)

// Builder produces a fresh build; satisfied by *pipeline.Runner.
type Builder interface {
	Run(ctx context.Context) (*pipeline.Build, error)
}

// Server serves the latest build and rebuilds on an interval. A failed
// rebuild keeps the previous build in place.
type Server struct {
	app       *fiber.App
	scheduler *gocron.Scheduler
	builder   Builder
	interval  time.Duration

	mu     sync.RWMutex
	latest *pipeline.Build
}

// New creates a Server seeded with the first build.
func New(builder Builder, first *pipeline.Build, interval time.Duration) *Server {
	s := &Server{
		scheduler: gocron.NewScheduler(time.UTC),
		builder:   builder,
		interval:  interval,
		latest:    first,
	}

	app := fiber.New(fiber.Config{
		AppName:               "skitrip-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	app.Use(logger.New())
	app.Use(recover.New())

	s.registerRoutes(app)
	s.app = app
	return s
}

// Latest returns the current build.
func (s *Server) Latest() *pipeline.Build {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Listen starts the rebuild scheduler and serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	if _, err := s.scheduler.Every(s.interval).Do(s.rebuild); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return s.app.Listen(addr)
}

// Shutdown stops the scheduler and drains the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) rebuild() {
	log.Printf("scheduled rebuild starting")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	build, err := s.builder.Run(ctx)
	if err != nil {
		log.Printf("rebuild failed, keeping previous build: %v", err)
		return
	}

	s.mu.Lock()
	s.latest = build
	s.mu.Unlock()
	log.Printf("rebuild complete: %d days", len(build.Days))
}
