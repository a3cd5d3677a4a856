package models

import (
	"gorm.io/gorm"
)

// Portfolio holds a user's public profile. One row per user.
type Portfolio struct {
	ID                string `json:"id" gorm:"primaryKey"`
	UserID            string `json:"userId" gorm:"column:user_id;not null;uniqueIndex"`
	User              User   `json:"-" gorm:"foreignKey:UserID"`
	Bio               string `json:"bio" gorm:"size:2048"`
	WebsiteURL        string `json:"websiteUrl" gorm:"size:1024"`
	LinkedinURL       string `json:"linkedinUrl" gorm:"size:1024"`
	GithubURL         string `json:"githubUrl" gorm:"size:1024"`
	TwitterURL        string `json:"twitterUrl" gorm:"size:1024"`
	ResearchInterests string `json:"researchInterests" gorm:"size:1024"`
	Achievements      string `json:"achievements" gorm:"size:2048"`
	Education         string `json:"education" gorm:"size:2048"`
	Experience        string `json:"experience" gorm:"size:2048"`
	gorm.Model
}

// TableName specifies the table name for Portfolio Model
func (Portfolio) TableName() string {
	return "user_portfolios"
}
