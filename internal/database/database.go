package database

import (
	"fmt"
	"log"

	"faculty-portal-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB(path string) {
	var err error

	// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Submission{},
		&models.Portfolio{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// Seed creates a default HOD and two faculty accounts when the users
// table is empty, so a fresh install is immediately usable.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name, email, department string
		role                    models.Role
	}{
		{"Head of Department", "hod@ftms.local", "CSE", models.RoleHOD},
		{"Faculty One", "faculty1@ftms.local", "CSE", models.RoleFaculty},
		{"Faculty Two", "faculty2@ftms.local", "EEE", models.RoleFaculty},
	}

	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := models.User{
			ID:         fmt.Sprintf("user-%s", uuid.NewString()),
			Name:       d.name,
			Email:      d.email,
			Password:   string(hash),
			Role:       d.role,
			Department: d.department,
			Enabled:    true,
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}
