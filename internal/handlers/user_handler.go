package handlers

import (
	"net/http"

	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetAllUsers returns all users as mini views (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]MiniUserView, 0, len(users))
	for _, u := range users {
		resp = append(resp, *toMiniView(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// GetFacultyMembers returns only users with the FACULTY role
// GET /api/users/faculty
func GetFacultyMembers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Where("role = ?", models.RoleFaculty).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch faculty members"})
		return
	}

	resp := make([]MiniUserView, 0, len(users))
	for _, u := range users {
		resp = append(resp, *toMiniView(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// GetUserByID returns a single user
// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	var user models.User
	if err := database.GetDB().Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, toMiniView(user))
}
