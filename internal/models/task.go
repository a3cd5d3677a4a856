package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusSubmitted  TaskStatus = "SUBMITTED"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusOverdue    TaskStatus = "OVERDUE"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusSubmitted, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

const (
	// PriorityHigh and PriorityLow bound the priority scale; 1 is the
	// most urgent.
	PriorityHigh    = 1
	PriorityDefault = 3
	PriorityLow     = 5
)

// Task represents a unit of work assigned by a HOD to a faculty
// member. Status only changes through the workflow service.
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description"`
	DueAt        *time.Time `json:"dueAt" gorm:"column:due_at"`
	Priority     int        `json:"priority" gorm:"default:3"`
	Status       TaskStatus `json:"status" gorm:"not null;default:'PENDING'"`
	AssignedToID string     `json:"-" gorm:"column:assigned_to_id;not null;index"`
	AssignedTo   User       `json:"-" gorm:"foreignKey:AssignedToID"`
	AssignedByID string     `json:"-" gorm:"column:assigned_by_id;not null"`
	AssignedBy   User       `json:"-" gorm:"foreignKey:AssignedByID"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Locked reports whether the task is terminal. It is derived from
// status and never stored, so the invariant locked <=> COMPLETED
// cannot drift.
func (t *Task) Locked() bool {
	return t.Status == StatusCompleted
}
