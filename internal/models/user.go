package models

import (
	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleFaculty Role = "FACULTY"
	RoleHOD     Role = "HOD"
	RoleAdmin   Role = "ADMIN"
	RoleIT      Role = "IT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFaculty, RoleHOD, RoleAdmin, RoleIT:
		return true
	}
	return false
}

// IsSupervisor reports whether the role may assign and review tasks.
// Only HOD carries supervisory authority.
func (r Role) IsSupervisor() bool {
	return r == RoleHOD
}

// User represents a user in the system
type User struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"unique;not null"`
	Password   string `json:"-" gorm:"not null"`
	Role       Role   `json:"role" gorm:"not null;default:'FACULTY'"`
	Department string `json:"department"`
	Enabled    bool   `json:"enabled" gorm:"default:true"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// Identity is the immutable actor value passed into every workflow
// call. It is deliberately decoupled from the persisted User entity.
type Identity struct {
	ID    string
	Role  Role
	Email string
}

// IdentityOf builds an Identity snapshot from a stored user.
func IdentityOf(u User) Identity {
	return Identity{ID: u.ID, Role: u.Role, Email: u.Email}
}
