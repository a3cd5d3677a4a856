package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/models"
	"faculty-portal-api/internal/service"
	"faculty-portal-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAnalyticsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireSupervisor())
	api.GET("/analytics/performance", GetFacultyPerformance)
	api.GET("/analytics/trends", GetTaskTrends)
	return r
}

func TestFacultyPerformance(t *testing.T) {
	r := newAnalyticsRouter(t)
	db := database.GetDB()

	hod, err := testutil.NewUser(db, "Head", "an-hod@ftms.local", models.RoleHOD)
	require.NoError(t, err)
	fac, err := testutil.NewUser(db, "Alice", "an-alice@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	// two tasks; one driven through to completion
	svc := service.NewTaskService(db)
	hodID := models.IdentityOf(hod)
	facID := models.IdentityOf(fac)

	done, err := svc.Create(hodID, service.CreateTaskInput{Title: "a", AssignedToID: fac.ID})
	require.NoError(t, err)
	_, err = svc.Create(hodID, service.CreateTaskInput{Title: "b", AssignedToID: fac.ID})
	require.NoError(t, err)

	_, err = svc.Start(done.ID, facID)
	require.NoError(t, err)
	_, err = svc.Submit(done.ID, facID, service.SubmissionInput{Summary: "done"})
	require.NoError(t, err)
	_, err = svc.Review(done.ID, hodID, service.ReviewInput{Decision: models.DecisionApproved})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/analytics/performance", tokenFor(t, hod), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalFaculty        int                  `json:"totalFaculty"`
		TotalTasksAssigned  int64                `json:"totalTasksAssigned"`
		TotalTasksCompleted int64                `json:"totalTasksCompleted"`
		FacultyPerformances []FacultyPerformance `json:"facultyPerformances"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalFaculty)
	require.EqualValues(t, 2, resp.TotalTasksAssigned)
	require.EqualValues(t, 1, resp.TotalTasksCompleted)
	require.Len(t, resp.FacultyPerformances, 1)
	require.InDelta(t, 50.0, resp.FacultyPerformances[0].CompletionRate, 0.01)

	// faculty cannot read analytics
	w = doJSON(t, r, http.MethodGet, "/api/analytics/performance", tokenFor(t, fac), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskTrends(t *testing.T) {
	r := newAnalyticsRouter(t)
	db := database.GetDB()

	hod, err := testutil.NewUser(db, "Head", "tr-hod@ftms.local", models.RoleHOD)
	require.NoError(t, err)
	fac, err := testutil.NewUser(db, "Alice", "tr-alice@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	svc := service.NewTaskService(db)
	_, err = svc.Create(models.IdentityOf(hod), service.CreateTaskInput{Title: "a", AssignedToID: fac.ID})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/analytics/trends", tokenFor(t, hod), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Trends []TaskTrend `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Trends, 1)
	require.Equal(t, time.Now().UTC().Format("Jan 2006"), resp.Trends[0].Month)
	require.EqualValues(t, 1, resp.Trends[0].Created)
}
