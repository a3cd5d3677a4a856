package auth

import (
	"testing"

	"faculty-portal-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	identity := models.Identity{
		ID:    "user-1",
		Role:  models.RoleHOD,
		Email: "hod@ftms.local",
	}

	token, err := GenerateToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, identity.ID, claims.UserID)
	require.Equal(t, identity.Email, claims.Email)
	require.Equal(t, models.RoleHOD, claims.Role)
	require.Equal(t, jwtIssuer, claims.Issuer)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	token, err := GenerateToken(models.Identity{
		ID: "user-1", Role: models.RoleFaculty, Email: "a@ftms.local",
	})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	require.Error(t, err)
}
