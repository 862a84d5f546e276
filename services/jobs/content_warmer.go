package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// warmTimeout bounds one warming pass over every content resource
const warmTimeout = 2 * time.Minute

// Refresher revalidates the cached content. *query.Queries implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StartScheduler runs WarmContent on schedule (a cron spec such as
// "@every 4m"). It returns nil when schedule is empty or "off".
func StartScheduler(schedule string, refresher Refresher) (*cron.Cron, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" || strings.EqualFold(schedule, "off") {
		log.Println("[CRON] Content warmer disabled")
		return nil, nil
	}

	loc, err := time.LoadLocation("Africa/Algiers")
	if err != nil {
		loc = time.UTC
	}

	logger := cron.PrintfLogger(log.Default())
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(schedule, func() {
		WarmContent(context.Background(), refresher)
	}); err != nil {
		return nil, fmt.Errorf("invalid content warm schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Printf("[CRON] Content warmer scheduled (%s)", schedule)
	return c, nil
}

// WarmContent refreshes every content resource once. Failures are logged;
// the cache keeps serving the last known data.
func WarmContent(ctx context.Context, refresher Refresher) error {
	ctx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()

	started := time.Now()
	if err := refresher.Refresh(ctx); err != nil {
		log.Printf("[JOB] Content warm finished with errors in %s: %v", time.Since(started).Round(time.Millisecond), err)
		return err
	}

	log.Printf("[JOB] Content warmed in %s", time.Since(started).Round(time.Millisecond))
	return nil
}
