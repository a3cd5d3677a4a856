// Package guard holds the pure authorization predicates that gate
// task workflow transitions. Predicates never touch storage; callers
// load the task (with its assignee) first.
package guard

import (
	"strings"

	"faculty-portal-api/internal/models"
)

// IsAssignee reports whether actor is the faculty member the task was
// assigned to. Emails are compared case-insensitively.
func IsAssignee(task *models.Task, actor models.Identity) bool {
	if task == nil || task.AssignedTo.Email == "" {
		return false
	}
	return strings.EqualFold(task.AssignedTo.Email, actor.Email)
}

// IsSupervisor reports whether actor may assign and review tasks.
func IsSupervisor(actor models.Identity) bool {
	return actor.Role.IsSupervisor()
}
