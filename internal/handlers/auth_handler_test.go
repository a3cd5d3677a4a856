package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/models"
	"faculty-portal-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	r.POST("/api/auth/login", Login)
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())
	protected.GET("/auth/me", Me)
	hodOnly := protected.Group("")
	hodOnly.Use(middleware.RequireSupervisor())
	hodOnly.POST("/auth/register", Register)
	return r
}

func TestLogin_Success(t *testing.T) {
	r := newAuthRouter(t)
	user, err := testutil.NewUser(database.GetDB(), "Alice", "alice@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"email": "alice@ftms.local", "password": "password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, user.ID, resp.User.ID)
	require.Equal(t, string(models.RoleFaculty), resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newAuthRouter(t)
	_, err := testutil.NewUser(database.GetDB(), "Alice", "alice@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"email": "alice@ftms.local", "password": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	r := newAuthRouter(t)

	body, _ := json.Marshal(gin.H{"email": "ghost@ftms.local", "password": "password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r := newAuthRouter(t)
	user, err := testutil.NewUser(database.GetDB(), "Alice", "me@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me MiniUserView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, user.ID, me.ID)
	require.Equal(t, "me@ftms.local", me.Email)
}

func TestRegister_SupervisorOnly(t *testing.T) {
	r := newAuthRouter(t)
	hod, err := testutil.NewUser(database.GetDB(), "Head", "hod-reg@ftms.local", models.RoleHOD)
	require.NoError(t, err)
	fac, err := testutil.NewUser(database.GetDB(), "Alice", "fac-reg@ftms.local", models.RoleFaculty)
	require.NoError(t, err)

	payload := gin.H{
		"name":       "New Faculty",
		"email":      "new@ftms.local",
		"password":   "longenough",
		"role":       "FACULTY",
		"department": "EEE",
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", tokenFor(t, fac), payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", tokenFor(t, hod), payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created MiniUserView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "new@ftms.local", created.Email)

	// duplicate email -> conflict
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", tokenFor(t, hod), payload)
	require.Equal(t, http.StatusConflict, w.Code)
}
