package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"faculty-portal-api/internal/auth"
	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string       `json:"token"`
	User  MiniUserView `json:"user"`
}

// RegisterRequest represents the HOD-only user creation payload
type RegisterRequest struct {
	Name       string      `json:"name" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	Password   string      `json:"password" binding:"required,min=8"`
	Role       models.Role `json:"role" binding:"required"`
	Department string      `json:"department"`
}

// Login handles POST /api/auth/login
// Verifies email/password against the users table and issues a JWT.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	var user models.User
	err := database.GetDB().Where("lower(email) = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil || !user.Enabled {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(models.IdentityOf(user))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  *toMiniView(user),
	})
}

// Me handles GET /api/auth/me
// Returns the authenticated user's profile.
func Me(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", actor.ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toMiniView(user))
}

// Register handles POST /api/auth/register
// HOD-only creation of new accounts.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:         fmt.Sprintf("user-%s", uuid.NewString()),
		Name:       req.Name,
		Email:      strings.ToLower(req.Email),
		Password:   string(hash),
		Role:       req.Role,
		Department: req.Department,
		Enabled:    true,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	c.JSON(http.StatusCreated, toMiniView(user))
}
