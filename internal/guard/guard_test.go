package guard

import (
	"testing"

	"faculty-portal-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestIsAssignee(t *testing.T) {
	task := &models.Task{
		AssignedTo: models.User{ID: "u-1", Email: "alice@ftms.local"},
	}

	require.True(t, IsAssignee(task, models.Identity{Email: "alice@ftms.local"}))
	require.True(t, IsAssignee(task, models.Identity{Email: "ALICE@FTMS.LOCAL"}))
	require.False(t, IsAssignee(task, models.Identity{Email: "bob@ftms.local"}))
	require.False(t, IsAssignee(task, models.Identity{}))
	require.False(t, IsAssignee(nil, models.Identity{Email: "alice@ftms.local"}))
	require.False(t, IsAssignee(&models.Task{}, models.Identity{Email: ""}))
}

func TestIsSupervisor(t *testing.T) {
	require.True(t, IsSupervisor(models.Identity{Role: models.RoleHOD}))
	require.False(t, IsSupervisor(models.Identity{Role: models.RoleFaculty}))
	require.False(t, IsSupervisor(models.Identity{Role: models.RoleAdmin}))
	require.False(t, IsSupervisor(models.Identity{Role: models.RoleIT}))
	require.False(t, IsSupervisor(models.Identity{}))
}
