package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MuseLink-app/muselink-backend/config"
	"github.com/MuseLink-app/muselink-backend/internal/auth"
	"github.com/MuseLink-app/muselink-backend/internal/bootstrap"
	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
	"github.com/MuseLink-app/muselink-backend/internal/media"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	if err := bootstrap.Migrate(ctx, cfg.Database.DSN()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer rdb.Close()

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("init firebase: %v", err)
	}

	var mediaSvc *media.Service
	if cfg.Media.Bucket != "" {
		mediaSvc, err = media.NewService(ctx, cfg.Media)
		if err != nil {
			log.Fatalf("init media: %v", err)
		}
	} else {
		log.Println("MEDIA_BUCKET not set, media endpoints disabled")
	}

	monitor := connectivity.NewMonitor(pool, rdb, cfg.Worker.HealthPollInterval)
	go monitor.Run(ctx)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "muselink-api",
		Version:        cfg.App.Version,
		DB:             pool,
		Redis:          rdb,
		AuthClient:     authClient,
		Monitor:        monitor,
		Media:          mediaSvc,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CacheTTL:       cfg.Redis.CacheTTL,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
