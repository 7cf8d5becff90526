// Package worker runs the background jobs: nightly close of stale listings
// and a periodic warm of the discovery-feed cache.
package worker

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MuseLink-app/muselink-backend/internal/cache"
	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
	"github.com/MuseLink-app/muselink-backend/internal/projects"
)

type Scheduler struct {
	projects *projects.Repo
	store    *cache.Store
	monitor  *connectivity.Monitor

	staleDays int
}

func NewScheduler(projectRepo *projects.Repo, store *cache.Store, monitor *connectivity.Monitor, staleDays int) *Scheduler {
	if staleDays <= 0 {
		staleDays = 60
	}
	return &Scheduler{
		projects:  projectRepo,
		store:     store,
		monitor:   monitor,
		staleDays: staleDays,
	}
}

// Start initializes cron tasks
func (s *Scheduler) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	// nightly at 12:00 AM
	if _, err := c.AddFunc("0 0 0 * * *", func() {
		s.closeStale(ctx)
	}); err != nil {
		return nil, err
	}

	// cache warm every 5 minutes
	if _, err := c.AddFunc("0 */5 * * * *", func() {
		s.warmProjectFeed(ctx)
	}); err != nil {
		return nil, err
	}

	log.Println("Cron scheduler started (nightly stale close, 5m cache warm)")
	c.Start()
	return c, nil
}

func (s *Scheduler) closeStale(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	n, err := s.projects.CloseStale(runCtx, s.staleDays)
	if err != nil {
		log.Printf("close stale projects: %v", err)
		return
	}
	if n > 0 {
		log.Printf("closed %d stale projects", n)
		if s.store != nil {
			_ = s.store.InvalidateGroup(runCtx, cache.GroupProjects)
		}
	}
}

// warmProjectFeed refreshes the default discovery page so the first mobile
// request after a quiet period doesn't pay the DB round trip.
func (s *Scheduler) warmProjectFeed(ctx context.Context) {
	if s.store == nil {
		return
	}

	// Skip the warm while dependencies are down; the monitor already logged it.
	if s.monitor != nil && !s.monitor.Snapshot().Healthy() {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	const limit = 20
	items, err := s.projects.Browse(runCtx, projects.BrowseFilter{Limit: limit})
	if err != nil {
		log.Printf("warm project feed: %v", err)
		return
	}

	key := cache.BrowseKey("", "", strconv.Itoa(limit), "0")
	if err := s.store.Set(runCtx, cache.GroupProjects, key, items); err != nil {
		log.Printf("warm project feed cache: %v", err)
	}
}
