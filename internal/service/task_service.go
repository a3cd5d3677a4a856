// Package service implements the task workflow engine: the state
// machine over task statuses, the guard-before-mutate checks, and the
// submission/review records. All status changes in the system go
// through TaskService; handlers only translate HTTP to calls here.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"faculty-portal-api/internal/guard"
	"faculty-portal-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxSubmissionLinks = 10

// TaskService owns every task transition. It is stateless apart from
// the database handle and safe for concurrent use.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService returns a workflow engine bound to db.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTaskInput carries the fields a supervisor provides when
// assigning a task.
type CreateTaskInput struct {
	Title        string
	Description  string
	DueAt        *time.Time
	AssignedToID string
	Priority     int
}

// SubmissionInput carries one work submission.
type SubmissionInput struct {
	Summary string
	Links   []string
}

// ReviewInput carries a review verdict.
type ReviewInput struct {
	Decision models.ReviewDecision
	Note     string
}

// Create assigns a new task. Only supervisors may create; the task
// always starts PENDING with priority defaulted to 3.
func (s *TaskService) Create(actor models.Identity, in CreateTaskInput) (*models.Task, error) {
	if !guard.IsSupervisor(actor) {
		return nil, forbidden("only a supervisor can assign tasks")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, validation("title is required")
	}
	priority := in.Priority
	if priority == 0 {
		priority = models.PriorityDefault
	}
	if priority < models.PriorityHigh || priority > models.PriorityLow {
		return nil, validation("priority must be between %d and %d", models.PriorityHigh, models.PriorityLow)
	}

	var assignee models.User
	if err := s.db.Where("id = ?", in.AssignedToID).First(&assignee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("assignee")
		}
		return nil, err
	}

	task := models.Task{
		ID:           fmt.Sprintf("task-%s", uuid.NewString()),
		Title:        in.Title,
		Description:  in.Description,
		DueAt:        in.DueAt,
		Priority:     priority,
		Status:       models.StatusPending,
		AssignedToID: assignee.ID,
		AssignedByID: actor.ID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

// Start moves a task the actor is assigned to from PENDING or OVERDUE
// into IN_PROGRESS.
func (s *TaskService) Start(taskID string, actor models.Identity) (*models.Task, error) {
	task, err := s.load(taskID)
	if err != nil {
		return nil, err
	}
	if task.Locked() {
		return nil, lockedErr()
	}
	if !guard.IsAssignee(task, actor) {
		return nil, forbidden("only the assignee can start this task")
	}
	if task.Status != models.StatusPending && task.Status != models.StatusOverdue {
		return nil, invalidState("cannot start from %s, expected %s or %s",
			task.Status, models.StatusPending, models.StatusOverdue)
	}

	if err := s.transition(taskID, task.Status, models.StatusInProgress); err != nil {
		return nil, err
	}
	task.Status = models.StatusInProgress
	return task, nil
}

// Submit records the assignee's work and moves the task from
// IN_PROGRESS to SUBMITTED. The new submission row and the status
// change commit as one transaction.
func (s *TaskService) Submit(taskID string, actor models.Identity, in SubmissionInput) (*models.Task, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return nil, validation("summary is required")
	}
	if len(in.Links) > maxSubmissionLinks {
		return nil, validation("at most %d links allowed", maxSubmissionLinks)
	}
	for _, link := range in.Links {
		if strings.TrimSpace(link) == "" {
			return nil, validation("links must not be blank")
		}
	}

	task, err := s.load(taskID)
	if err != nil {
		return nil, err
	}
	if task.Locked() {
		return nil, lockedErr()
	}
	if !guard.IsAssignee(task, actor) {
		return nil, forbidden("only the assignee can submit this task")
	}
	if task.Status != models.StatusInProgress {
		return nil, invalidState("cannot submit from %s, expected %s",
			task.Status, models.StatusInProgress)
	}

	links := in.Links
	if links == nil {
		links = []string{}
	}
	sub := models.Submission{
		ID:            fmt.Sprintf("subm-%s", uuid.NewString()),
		TaskID:        task.ID,
		SubmittedByID: actor.ID,
		Summary:       in.Summary,
		Links:         links,
		SubmittedAt:   time.Now().UTC(),
		Decision:      models.DecisionPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return transitionTx(tx, taskID, models.StatusInProgress, models.StatusSubmitted)
	})
	if err != nil {
		return nil, err
	}
	task.Status = models.StatusSubmitted
	return task, nil
}

// Review resolves the pending submission on a SUBMITTED task.
// APPROVED completes (and locks) the task; REJECTED sends it back to
// PENDING for another round.
func (s *TaskService) Review(taskID string, actor models.Identity, in ReviewInput) (*models.Task, error) {
	if in.Decision != models.DecisionApproved && in.Decision != models.DecisionRejected {
		return nil, validation("decision must be %s or %s", models.DecisionApproved, models.DecisionRejected)
	}

	task, err := s.load(taskID)
	if err != nil {
		return nil, err
	}
	if task.Locked() {
		return nil, lockedErr()
	}
	if !guard.IsSupervisor(actor) {
		return nil, forbidden("only a supervisor can review submissions")
	}
	if task.Status != models.StatusSubmitted {
		return nil, invalidState("cannot review from %s, expected %s",
			task.Status, models.StatusSubmitted)
	}

	next := models.StatusCompleted
	if in.Decision == models.DecisionRejected {
		next = models.StatusPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		err := tx.Where("task_id = ? AND decision = ?", taskID, models.DecisionPending).
			Order("submitted_at desc").
			First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A SUBMITTED task without a pending submission means
				// the two records desynced; surface, never ignore.
				return invalidState("task %s is %s but has no pending submission", taskID, task.Status)
			}
			return err
		}

		now := time.Now().UTC()
		decidedBy := actor.ID
		res := tx.Model(&models.Submission{}).
			Where("id = ? AND decision = ?", sub.ID, models.DecisionPending).
			Updates(map[string]any{
				"decision":      in.Decision,
				"decision_note": in.Note,
				"decided_at":    now,
				"decided_by_id": decidedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalidState("submission %s was already decided", sub.ID)
		}
		return transitionTx(tx, taskID, models.StatusSubmitted, next)
	})
	if err != nil {
		return nil, err
	}
	task.Status = next
	return task, nil
}

// ListSubmissions returns all submissions for a task, most recent
// first. The task must exist.
func (s *TaskService) ListSubmissions(taskID string) ([]models.Submission, error) {
	if _, err := s.load(taskID); err != nil {
		return nil, err
	}
	subs := []models.Submission{}
	err := s.db.Preload("SubmittedBy").Preload("DecidedBy").
		Where("task_id = ?", taskID).
		Order("submitted_at desc").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// Get returns a single task visible to the actor: any supervisor, the
// assignee, or the assigner.
func (s *TaskService) Get(taskID string, actor models.Identity) (*models.Task, error) {
	task, err := s.load(taskID)
	if err != nil {
		return nil, err
	}
	if !guard.IsSupervisor(actor) && !guard.IsAssignee(task, actor) && task.AssignedByID != actor.ID {
		return nil, forbidden("not allowed to view this task")
	}
	return task, nil
}

// List returns tasks visible to the actor, optionally filtered by
// status. Supervisors see every task; everyone else sees their own.
func (s *TaskService) List(actor models.Identity, status string) ([]models.Task, error) {
	query := s.db.Preload("AssignedTo").Preload("AssignedBy").Model(&models.Task{})
	if !guard.IsSupervisor(actor) {
		query = query.Where("assigned_to_id = ?", actor.ID)
	}
	if status != "" {
		st := models.TaskStatus(status)
		if !st.Valid() {
			return nil, validation("invalid status: %s", status)
		}
		query = query.Where("status = ?", st)
	}
	tasks := []models.Task{}
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUser returns tasks assigned to a specific user. Non-supervisors
// may only look at their own.
func (s *TaskService) ListByUser(actor models.Identity, userID, status string) ([]models.Task, error) {
	if !guard.IsSupervisor(actor) && actor.ID != userID {
		return nil, forbidden("you can only view your own tasks")
	}
	var target models.User
	if err := s.db.Where("id = ?", userID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}
	query := s.db.Preload("AssignedTo").Preload("AssignedBy").
		Where("assigned_to_id = ?", userID)
	if status != "" {
		st := models.TaskStatus(status)
		if !st.Valid() {
			return nil, validation("invalid status: %s", status)
		}
		query = query.Where("status = ?", st)
	}
	tasks := []models.Task{}
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// load fetches a task with both user associations.
func (s *TaskService) load(taskID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("AssignedTo").Preload("AssignedBy").
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task")
		}
		return nil, err
	}
	return &task, nil
}

// transition performs a single status-guarded update outside any
// caller transaction.
func (s *TaskService) transition(taskID string, from, to models.TaskStatus) error {
	return transitionTx(s.db, taskID, from, to)
}

// transitionTx flips status only if the row still holds the status the
// decision was based on. Zero rows affected means another writer got
// there first; the caller's view was stale and must not win.
func transitionTx(tx *gorm.DB, taskID string, from, to models.TaskStatus) error {
	res := tx.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidState("task %s is no longer %s", taskID, from)
	}
	return nil
}
