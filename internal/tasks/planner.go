package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes queue entries older than maxAge.
type Pruner interface {
	PruneStale(ctx context.Context, maxAge time.Duration) (int, error)
}

// PruneStaleEntries returns the cron job that drops abandoned queue entries.
func PruneStaleEntries(p Pruner, maxAge time.Duration, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := p.PruneStale(ctx, maxAge)
		if err != nil {
			log.Println("pruning stale queue entries:", err)
			return
		}
		if n > 0 {
			log.Printf("pruned %d queue entries older than %s", n, maxAge)
		}
	}
}

// InitScheduler registers the housekeeping jobs and starts the scheduler.
// schedule is a cron spec with a seconds field.
func InitScheduler(schedule string, p Pruner, maxAge time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(schedule, PruneStaleEntries(p, maxAge, time.Minute)); err != nil {
		return nil, fmt.Errorf("tasks: schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Println("cron scheduler started")
	return c, nil
}
