package handlers

import (
	"net/http"
	"time"

	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/models"
	"faculty-portal-api/internal/realtime"
	"faculty-portal-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes the workflow engine over HTTP.
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler wires a handler to the workflow service.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	DueAt            *time.Time `json:"dueAt"`
	AssignedToUserID string     `json:"assignedToUserId" binding:"required"`
	Priority         int        `json:"priority"`
}

// SubmitTaskRequest represents the work-submission payload
type SubmitTaskRequest struct {
	Summary string   `json:"summary" binding:"required"`
	Links   []string `json:"links"`
}

// ReviewTaskRequest represents the review payload
type ReviewTaskRequest struct {
	Decision models.ReviewDecision `json:"decision" binding:"required"`
	Note     string                `json:"note"`
}

// CreateTask handles POST /api/tasks
// HOD assigns a new task; it always starts PENDING.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Create(actor, service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DueAt:        req.DueAt,
		AssignedToID: req.AssignedToUserID,
		Priority:     req.Priority,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	notifyTask("task_created", task, actor)
	c.JSON(http.StatusCreated, toTaskView(task))
}

// GetTasks handles GET /api/tasks
// HOD sees all tasks; everyone else sees their own. Optional ?status= filter.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	tasks, err := h.svc.List(actor, c.Query("status"))
	if err != nil {
		renderError(c, err)
		return
	}

	views := toTaskViews(tasks)
	c.JSON(http.StatusOK, gin.H{
		"tasks": views,
		"count": len(views),
	})
}

// GetTasksByUser handles GET /api/tasks/by-user/:userId
func (h *TaskHandler) GetTasksByUser(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	tasks, err := h.svc.ListByUser(actor, c.Param("userId"), c.Query("status"))
	if err != nil {
		renderError(c, err)
		return
	}

	views := toTaskViews(tasks)
	c.JSON(http.StatusOK, gin.H{
		"tasks": views,
		"count": len(views),
	})
}

// GetTaskByID handles GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, err := h.svc.Get(c.Param("id"), actor)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskView(task))
}

// StartTask handles PATCH /api/tasks/:id/start
// Assignee moves a PENDING or OVERDUE task to IN_PROGRESS.
func (h *TaskHandler) StartTask(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, err := h.svc.Start(c.Param("id"), actor)
	if err != nil {
		renderError(c, err)
		return
	}

	notifyTask("task_started", task, actor)
	c.JSON(http.StatusOK, toTaskView(task))
}

// SubmitTask handles POST /api/tasks/:id/submit
// Assignee submits work; the task moves to SUBMITTED.
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Submit(c.Param("id"), actor, service.SubmissionInput{
		Summary: req.Summary,
		Links:   req.Links,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	notifyTask("task_submitted", task, actor)
	c.JSON(http.StatusOK, toTaskView(task))
}

// ReviewTask handles POST /api/tasks/:id/review
// HOD approves (task completes and locks) or rejects (task returns to
// PENDING).
func (h *TaskHandler) ReviewTask(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ReviewTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Review(c.Param("id"), actor, service.ReviewInput{
		Decision: req.Decision,
		Note:     req.Note,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	notifyTask("task_reviewed", task, actor)
	c.JSON(http.StatusOK, toTaskView(task))
}

// ListSubmissions handles GET /api/tasks/:id/submissions
// Submission history, most recent first. Visible to the assignee,
// the assigner, or any HOD.
func (h *TaskHandler) ListSubmissions(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Reuse the task visibility rule before exposing history.
	if _, err := h.svc.Get(c.Param("id"), actor); err != nil {
		renderError(c, err)
		return
	}

	subs, err := h.svc.ListSubmissions(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	views := make([]SubmissionView, 0, len(subs))
	for i := range subs {
		views = append(views, toSubmissionView(&subs[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"submissions": views,
		"count":       len(views),
	})
}

// notifyTask pushes a workflow event to the assignee and the assigner.
func notifyTask(eventType string, task *models.Task, actor models.Identity) {
	realtime.GetHub().Notify(realtime.TaskEvent{
		Type:   eventType,
		TaskID: task.ID,
		Status: string(task.Status),
		Actor:  actor.ID,
	}, task.AssignedToID, task.AssignedByID)
}
