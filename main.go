// Job board API: companies, the jobs they post, and the listings job seekers
// browse. Also runs the openPositions reconcile schedule in-process.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"jobboard/api/config"
	_ "jobboard/api/docs"
	"jobboard/api/handlers"
	"jobboard/api/internal/counter"
	"jobboard/api/internal/events"
	"jobboard/api/internal/scheduler"
	"jobboard/api/internal/store"
	"jobboard/api/internal/worker"
	"jobboard/api/middleware"
)

// reconcileQueueSize bounds how many reconcile tasks may wait for a worker.
const reconcileQueueSize = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, store.Options{
		Driver:      cfg.StoreDriver,
		DatabaseURL: cfg.DatabaseURL,
		SupabaseURL: cfg.SupabaseURL,
		SupabaseKey: cfg.SupabaseKey,
	})
	if err != nil {
		log.Fatalf("Store %s: %v", cfg.StoreDriver, err)
	}
	defer st.Close()
	log.WithField("driver", st.Driver()).Info("Store ready")

	var publisher events.Publisher = events.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := events.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Redis: %v", err)
		}
		publisher = rdb
		log.Info("Publishing job events to Redis")
	}
	defer publisher.Close()

	var logos handlers.LogoSigner
	if ls, err := config.NewLogoStorage(cfg); err != nil {
		log.Fatalf("Supabase storage: %v", err)
	} else if ls != nil {
		logos = ls
		log.WithField("bucket", ls.Bucket()).Info("Logo uploads enabled")
	}

	maintainer := counter.New(st, st, log)

	dispatcher := worker.NewDispatcher(cfg.ReconcileWorkers, reconcileQueueSize, log)
	dispatcher.Run(ctx)

	var sched *scheduler.Scheduler
	if cfg.ReconcileSchedule != "" {
		sched = scheduler.New(cfg.ReconcileSchedule, st, maintainer, dispatcher, log)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("Scheduler: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "jobboard-api",
		ErrorHandler: handlers.ErrorHandler(log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))

	h := handlers.NewApplicationHandler(st, maintainer, publisher, logos, log)
	app.Get("/health", h.Health)
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	h.RegisterRoutes(app.Group("/api/v1"), middleware.RequireBearer(cfg.AuthJWTSecret))

	go func() {
		log.Infof("Listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("HTTP shutdown error")
	}
	if sched != nil {
		sched.Stop()
	}
	cancel()
	dispatcher.Stop()
	log.Info("Stopped")
}
