package testutil

import (
	"fmt"

	"faculty-portal-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Submission{},
		&models.Portfolio{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// NewUser inserts a user with a bcrypt-hashed password and returns it.
func NewUser(db *gorm.DB, name, email string, role models.Role) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:         fmt.Sprintf("user-%s", uuid.NewString()),
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		Department: "CSE",
		Enabled:    true,
	}
	if err := db.Create(&u).Error; err != nil {
		return models.User{}, err
	}
	return u, nil
}
