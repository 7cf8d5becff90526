package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/MuseLink-app/muselink-backend/config"
	"github.com/MuseLink-app/muselink-backend/internal/bootstrap"
	"github.com/MuseLink-app/muselink-backend/internal/cache"
	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
	"github.com/MuseLink-app/muselink-backend/internal/projects"
	"github.com/MuseLink-app/muselink-backend/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer rdb.Close()

	monitor := connectivity.NewMonitor(pool, rdb, cfg.Worker.HealthPollInterval)
	go monitor.Run(ctx)

	store := cache.NewStore(rdb, cfg.Redis.CacheTTL)
	projectRepo := projects.NewRepo(pool)

	sched := worker.NewScheduler(projectRepo, store, monitor, cfg.Worker.StaleProjectDays)
	c, err := sched.Start(ctx)
	if err != nil {
		log.Fatalf("start scheduler: %v", err)
	}

	<-ctx.Done()
	log.Println("worker shutting down")
	<-c.Stop().Done()
}
