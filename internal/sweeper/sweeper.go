// Package sweeper demotes overdue tasks in the background. It is a
// system-level transition: no actor, no guard, only tasks that are
// neither submitted nor completed are touched.
package sweeper

import (
	"context"
	"sync"
	"time"

	"faculty-portal-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultInterval matches the reference behavior of one sweep every
// five minutes.
const DefaultInterval = 5 * time.Minute

// Sweeper periodically marks past-due tasks as OVERDUE. Start and
// Stop bracket the background loop; RunOnce is exported so tests can
// drive a single cycle synchronously.
type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
	log      *logrus.Logger

	runMu  sync.Mutex // at most one sweep in flight
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a sweeper. A non-positive interval falls back to
// DefaultInterval.
func New(db *gorm.DB, interval time.Duration, log *logrus.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{db: db, interval: interval, log: log}
}

// Start launches the periodic loop. It returns immediately; the loop
// runs until Stop is called or ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.RunOnce(time.Now().UTC()); err != nil {
					s.log.WithError(err).Error("overdue sweep failed")
				} else if n > 0 {
					s.log.WithField("count", n).Info("tasks marked overdue")
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for the current sweep, if any, to
// finish.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// RunOnce executes a single sweep against the given clock reading and
// returns how many tasks were demoted. A run that overlaps a still
// running sweep is skipped. Per-task failures are logged and do not
// abort the batch.
func (s *Sweeper) RunOnce(now time.Time) (int, error) {
	if !s.runMu.TryLock() {
		return 0, nil
	}
	defer s.runMu.Unlock()

	var candidates []models.Task
	err := s.db.
		Where("due_at IS NOT NULL AND due_at < ?", now).
		Where("status NOT IN ?", []models.TaskStatus{models.StatusSubmitted, models.StatusCompleted}).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, t := range candidates {
		if t.Status == models.StatusOverdue {
			// already demoted; repeat runs are no-ops
			continue
		}
		res := s.db.Model(&models.Task{}).
			Where("id = ? AND status = ?", t.ID, t.Status).
			Update("status", models.StatusOverdue)
		if res.Error != nil {
			s.log.WithError(res.Error).WithField("task_id", t.ID).Warn("failed to mark task overdue")
			continue
		}
		if res.RowsAffected > 0 {
			marked++
		}
	}
	return marked, nil
}
