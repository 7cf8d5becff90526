package connectivity

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Status is the last observed health of the process's dependencies.
type Status struct {
	DB        bool      `json:"db"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checked_at"`
}

// Healthy reports whether every dependency was reachable on the last poll.
func (s Status) Healthy() bool {
	return s.DB && s.Redis
}

// Monitor polls dependency health at a fixed cadence and keeps the last
// status behind atomics so request handlers can read it without locking.
type Monitor struct {
	db       *pgxpool.Pool
	rdb      *redis.Client
	interval time.Duration
	policy   Policy

	dbUp      atomic.Bool
	redisUp   atomic.Bool
	checkedAt atomic.Int64 // unix nanos of the last completed poll
}

func NewMonitor(db *pgxpool.Pool, rdb *redis.Client, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		db:       db,
		rdb:      rdb,
		interval: interval,
		policy:   DefaultPolicy(),
	}
}

// Check runs one poll and updates the stored status.
func (m *Monitor) Check(ctx context.Context) Status {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dbUp := true
	if m.db != nil {
		if err := m.policy.Do(pctx, func(ctx context.Context) error {
			return m.db.Ping(ctx)
		}); err != nil {
			dbUp = false
			log.Printf("[connectivity] db unreachable: %v", err)
		}
	}

	redisUp := true
	if m.rdb != nil {
		if err := m.policy.Do(pctx, func(ctx context.Context) error {
			return m.rdb.Ping(ctx).Err()
		}); err != nil {
			redisUp = false
			log.Printf("[connectivity] redis unreachable: %v", err)
		}
	}

	m.dbUp.Store(dbUp)
	m.redisUp.Store(redisUp)
	m.checkedAt.Store(time.Now().UnixNano())

	return m.Snapshot()
}

// Run polls until the context is cancelled. Intended to be started as a
// goroutine alongside the server.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Snapshot returns the last observed status without touching the network.
func (m *Monitor) Snapshot() Status {
	var checkedAt time.Time
	if ns := m.checkedAt.Load(); ns > 0 {
		checkedAt = time.Unix(0, ns).UTC()
	}
	return Status{
		DB:        m.dbUp.Load(),
		Redis:     m.redisUp.Load(),
		CheckedAt: checkedAt,
	}
}
