package handlers

import (
	"net/http"
	"time"

	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/models"

	"github.com/gin-gonic/gin"
)

// FacultyPerformance aggregates one faculty member's task counts over
// the queried window.
type FacultyPerformance struct {
	FacultyID      string  `json:"facultyId"`
	FacultyName    string  `json:"facultyName"`
	FacultyEmail   string  `json:"facultyEmail"`
	Department     string  `json:"department"`
	TasksAssigned  int64   `json:"tasksAssigned"`
	TasksCompleted int64   `json:"tasksCompleted"`
	TasksInFlight  int64   `json:"tasksInProgress"`
	TasksOverdue   int64   `json:"tasksOverdue"`
	CompletionRate float64 `json:"completionRate"`
}

// TaskTrend is one month's created/completed counts.
type TaskTrend struct {
	Month     string `json:"month"`
	Created   int64  `json:"created"`
	Completed int64  `json:"completed"`
}

// GetFacultyPerformance handles GET /api/analytics/performance
// HOD-only. Optional query params: from, to (RFC3339), department.
func GetFacultyPerformance(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	facultyQuery := db.Where("role = ?", models.RoleFaculty)
	if dept := c.Query("department"); dept != "" {
		facultyQuery = facultyQuery.Where("department = ?", dept)
	}
	var faculty []models.User
	if err := facultyQuery.Find(&faculty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch faculty"})
		return
	}

	performances := make([]FacultyPerformance, 0, len(faculty))
	var totalAssigned, totalCompleted int64
	for _, f := range faculty {
		type row struct {
			Status models.TaskStatus
			Count  int64
		}
		var rows []row
		err := db.Model(&models.Task{}).
			Select("status, COUNT(*) as count").
			Where("assigned_to_id = ? AND created_at BETWEEN ? AND ?", f.ID, from, to).
			Group("status").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		perf := FacultyPerformance{
			FacultyID:    f.ID,
			FacultyName:  f.Name,
			FacultyEmail: f.Email,
			Department:   f.Department,
		}
		for _, r := range rows {
			perf.TasksAssigned += r.Count
			switch r.Status {
			case models.StatusCompleted:
				perf.TasksCompleted = r.Count
			case models.StatusInProgress:
				perf.TasksInFlight = r.Count
			case models.StatusOverdue:
				perf.TasksOverdue = r.Count
			}
		}
		if perf.TasksAssigned > 0 {
			perf.CompletionRate = float64(perf.TasksCompleted) / float64(perf.TasksAssigned) * 100
		}
		totalAssigned += perf.TasksAssigned
		totalCompleted += perf.TasksCompleted
		performances = append(performances, perf)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalFaculty":        len(faculty),
		"totalTasksAssigned":  totalAssigned,
		"totalTasksCompleted": totalCompleted,
		"facultyPerformances": performances,
	})
}

// GetTaskTrends handles GET /api/analytics/trends
// Monthly created vs completed counts over the window.
func GetTaskTrends(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tasks []models.Task
	err = database.GetDB().
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at asc").
		Find(&tasks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	byMonth := make(map[string]*TaskTrend)
	order := []string{}
	for i := range tasks {
		key := tasks[i].CreatedAt.Format("Jan 2006")
		trend, ok := byMonth[key]
		if !ok {
			trend = &TaskTrend{Month: key}
			byMonth[key] = trend
			order = append(order, key)
		}
		trend.Created++
		if tasks[i].Status == models.StatusCompleted {
			trend.Completed++
		}
	}

	trends := make([]TaskTrend, 0, len(order))
	for _, key := range order {
		trends = append(trends, *byMonth[key])
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

// parseWindow resolves the from/to query params, defaulting to the
// last six months.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, -6, 0)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}
