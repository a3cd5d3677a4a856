package models

import (
	"time"

	"gorm.io/gorm"
)

// ReviewDecision represents the outcome recorded on a submission.
type ReviewDecision string

const (
	DecisionPending  ReviewDecision = "PENDING"
	DecisionApproved ReviewDecision = "APPROVED"
	DecisionRejected ReviewDecision = "REJECTED"
)

// Valid reports whether d is one of the known decisions.
func (d ReviewDecision) Valid() bool {
	switch d {
	case DecisionPending, DecisionApproved, DecisionRejected:
		return true
	}
	return false
}

// Submission records one work-submission event on a task plus its
// review outcome. The submission itself is immutable once created;
// only the decision fields are set later, exactly once.
type Submission struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	TaskID        string         `json:"taskId" gorm:"column:task_id;not null;index"`
	SubmittedByID string         `json:"-" gorm:"column:submitted_by_id;not null"`
	SubmittedBy   User           `json:"-" gorm:"foreignKey:SubmittedByID"`
	Summary       string         `json:"summary" gorm:"type:text;not null"`
	Links         []string       `json:"links" gorm:"serializer:json"`
	SubmittedAt   time.Time      `json:"submittedAt" gorm:"not null"`
	Decision      ReviewDecision `json:"decision" gorm:"not null;default:'PENDING'"`
	DecisionNote  string         `json:"decisionNote" gorm:"type:text"`
	DecidedAt     *time.Time     `json:"decidedAt"`
	DecidedByID   *string        `json:"-" gorm:"column:decided_by_id"`
	DecidedBy     *User          `json:"-" gorm:"foreignKey:DecidedByID"`
	gorm.Model
}

// TableName specifies the table name for Submission Model
func (Submission) TableName() string {
	return "task_submissions"
}
