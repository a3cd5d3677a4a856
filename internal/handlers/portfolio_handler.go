package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioRequest represents the create/update payload for a user
// portfolio.
type PortfolioRequest struct {
	Bio               string `json:"bio"`
	WebsiteURL        string `json:"websiteUrl"`
	LinkedinURL       string `json:"linkedinUrl"`
	GithubURL         string `json:"githubUrl"`
	TwitterURL        string `json:"twitterUrl"`
	ResearchInterests string `json:"researchInterests"`
	Achievements      string `json:"achievements"`
	Education         string `json:"education"`
	Experience        string `json:"experience"`
}

// canEditPortfolio: owners edit their own; HOD may edit anyone's.
func canEditPortfolio(actor models.Identity, userID string) bool {
	return actor.ID == userID || actor.Role.IsSupervisor()
}

// GetPortfolios handles GET /api/portfolios
func GetPortfolios(c *gin.Context) {
	var portfolios []models.Portfolio
	if err := database.GetDB().Preload("User").Find(&portfolios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"portfolios": portfolios,
		"count":      len(portfolios),
	})
}

// GetPortfolioByUser handles GET /api/portfolios/by-user/:userId
func GetPortfolioByUser(c *gin.Context) {
	var portfolio models.Portfolio
	err := database.GetDB().Preload("User").
		Where("user_id = ?", c.Param("userId")).
		First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		}
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// UpsertPortfolio handles PUT /api/portfolios/by-user/:userId
// Creates or updates the portfolio for a user.
func UpsertPortfolio(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	userID := c.Param("userId")
	if !canEditPortfolio(actor, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own portfolio"})
		return
	}

	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	db := database.GetDB()
	var portfolio models.Portfolio
	err := db.Where("user_id = ?", userID).First(&portfolio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		portfolio = models.Portfolio{
			ID:     fmt.Sprintf("pf-%s", uuid.NewString()),
			UserID: userID,
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		return
	}

	portfolio.Bio = req.Bio
	portfolio.WebsiteURL = req.WebsiteURL
	portfolio.LinkedinURL = req.LinkedinURL
	portfolio.GithubURL = req.GithubURL
	portfolio.TwitterURL = req.TwitterURL
	portfolio.ResearchInterests = req.ResearchInterests
	portfolio.Achievements = req.Achievements
	portfolio.Education = req.Education
	portfolio.Experience = req.Experience

	if err := db.Save(&portfolio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save portfolio"})
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE /api/portfolios/by-user/:userId
func DeletePortfolio(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	userID := c.Param("userId")
	if !canEditPortfolio(actor, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own portfolio"})
		return
	}

	result := database.GetDB().Where("user_id = ?", userID).Delete(&models.Portfolio{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete portfolio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}
