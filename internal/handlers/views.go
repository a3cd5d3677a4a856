package handlers

import (
	"errors"
	"net/http"
	"time"

	"faculty-portal-api/internal/models"
	"faculty-portal-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MiniUserView is the compact user projection embedded in task and
// submission views.
type MiniUserView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// TaskView is the read projection of a task. The engine never accepts
// a view back as input.
type TaskView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueAt       *time.Time    `json:"dueAt"`
	Status      string        `json:"status"`
	Priority    int           `json:"priority"`
	AssignedTo  *MiniUserView `json:"assignedTo"`
	AssignedBy  *MiniUserView `json:"assignedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Locked      bool          `json:"locked"`
}

// SubmissionView is the read projection of a submission.
type SubmissionView struct {
	ID           string        `json:"id"`
	TaskID       string        `json:"taskId"`
	SubmittedBy  *MiniUserView `json:"submittedBy"`
	Summary      string        `json:"summary"`
	Links        []string      `json:"links"`
	SubmittedAt  time.Time     `json:"submittedAt"`
	Decision     string        `json:"decision"`
	DecisionNote string        `json:"decisionNote"`
	DecidedAt    *time.Time    `json:"decidedAt"`
	DecidedBy    *MiniUserView `json:"decidedBy"`
}

func toMiniView(u models.User) *MiniUserView {
	if u.ID == "" {
		return nil
	}
	return &MiniUserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
	}
}

func toTaskView(t *models.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueAt:       t.DueAt,
		Status:      string(t.Status),
		Priority:    t.Priority,
		AssignedTo:  toMiniView(t.AssignedTo),
		AssignedBy:  toMiniView(t.AssignedBy),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Locked:      t.Locked(),
	}
}

func toTaskViews(tasks []models.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, toTaskView(&tasks[i]))
	}
	return views
}

func toSubmissionView(s *models.Submission) SubmissionView {
	view := SubmissionView{
		ID:           s.ID,
		TaskID:       s.TaskID,
		SubmittedBy:  toMiniView(s.SubmittedBy),
		Summary:      s.Summary,
		Links:        s.Links,
		SubmittedAt:  s.SubmittedAt,
		Decision:     string(s.Decision),
		DecisionNote: s.DecisionNote,
		DecidedAt:    s.DecidedAt,
	}
	if view.Links == nil {
		view.Links = []string{}
	}
	if s.DecidedBy != nil {
		view.DecidedBy = toMiniView(*s.DecidedBy)
	}
	return view
}

// renderError maps the workflow error kinds to HTTP outcomes. Anything
// unrecognized is a 500.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
