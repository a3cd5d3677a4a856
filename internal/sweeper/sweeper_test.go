package sweeper

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"faculty-portal-api/internal/models"
	"faculty-portal-api/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedTask(t *testing.T, db *gorm.DB, status models.TaskStatus, dueAt *time.Time) models.Task {
	t.Helper()
	hod, err := testutil.NewUser(db, "Head", fmt.Sprintf("hod-%d@ftms.local", time.Now().UnixNano()), models.RoleHOD)
	require.NoError(t, err)
	task := models.Task{
		ID:           fmt.Sprintf("task-%s-%d", status, time.Now().UnixNano()),
		Title:        "t",
		Status:       status,
		Priority:     models.PriorityDefault,
		DueAt:        dueAt,
		AssignedToID: hod.ID,
		AssignedByID: hod.ID,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func statusOf(t *testing.T, db *gorm.DB, id string) models.TaskStatus {
	t.Helper()
	var task models.Task
	require.NoError(t, db.Where("id = ?", id).First(&task).Error)
	return task.Status
}

func TestRunOnce_DemotesPastDueOpenTasks(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	pastPending := seedTask(t, db, models.StatusPending, &yesterday)
	pastInProgress := seedTask(t, db, models.StatusInProgress, &yesterday)
	futurePending := seedTask(t, db, models.StatusPending, &tomorrow)
	noDue := seedTask(t, db, models.StatusPending, nil)

	s := New(db, time.Minute, quietLogger())
	n, err := s.RunOnce(now)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Equal(t, models.StatusOverdue, statusOf(t, db, pastPending.ID))
	require.Equal(t, models.StatusOverdue, statusOf(t, db, pastInProgress.ID))
	require.Equal(t, models.StatusPending, statusOf(t, db, futurePending.ID))
	require.Equal(t, models.StatusPending, statusOf(t, db, noDue.ID))
}

func TestRunOnce_LeavesSubmittedAndCompletedAlone(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	submitted := seedTask(t, db, models.StatusSubmitted, &yesterday)
	completed := seedTask(t, db, models.StatusCompleted, &yesterday)

	s := New(db, time.Minute, quietLogger())
	n, err := s.RunOnce(now)
	require.NoError(t, err)
	require.Zero(t, n)

	require.Equal(t, models.StatusSubmitted, statusOf(t, db, submitted.ID))
	require.Equal(t, models.StatusCompleted, statusOf(t, db, completed.ID))
}

func TestRunOnce_Idempotent(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	task := seedTask(t, db, models.StatusPending, &yesterday)

	s := New(db, time.Minute, quietLogger())
	n, err := s.RunOnce(now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// re-running on an already OVERDUE task is a no-op
	n, err = s.RunOnce(now)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, models.StatusOverdue, statusOf(t, db, task.ID))
}

func TestStartStop(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	s := New(db, 10*time.Millisecond, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	s.Stop()
}
