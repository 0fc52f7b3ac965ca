package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedawell/backend/internal/models"
)

func TestRegister(t *testing.T) {
	t.Run("creates a patient account with preferences and allergies", func(t *testing.T) {
		db := setupServiceDB(t)
		svc := NewAuthService(db, "test-secret")

		token, err := svc.Register("Asha", "asha@example.com", "password123", "", "Vegetarian, vegan", "Dairy, nuts")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "patient", claims.Role)

		var user models.User
		require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
		assert.Equal(t, "patient", user.Role)
		assert.NotEqual(t, "password123", user.PasswordHash)

		var prefs []models.DietaryPreference
		require.NoError(t, db.Where("user_id = ?", user.ID).Find(&prefs).Error)
		require.Len(t, prefs, 2)
		types := []string{prefs[0].PreferenceType, prefs[1].PreferenceType}
		assert.ElementsMatch(t, []string{"vegetarian", "vegan"}, types)

		allergies, err := svc.GetUserAllergies(user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dairy", "nuts"}, allergies)
	})

	t.Run("doctor role is kept, anything else becomes patient", func(t *testing.T) {
		db := setupServiceDB(t)
		svc := NewAuthService(db, "test-secret")

		token, err := svc.Register("Dr. Rao", "rao@example.com", "password123", "doctor", "", "")
		require.NoError(t, err)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "doctor", claims.Role)

		token, err = svc.Register("Eve", "eve@example.com", "password123", "admin", "", "")
		require.NoError(t, err)
		claims, err = svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "patient", claims.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := setupServiceDB(t)
		svc := NewAuthService(db, "test-secret")

		_, err := svc.Register("Asha", "asha@example.com", "password123", "", "", "")
		require.NoError(t, err)

		_, err = svc.Register("Asha Again", "asha@example.com", "different", "", "", "")
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Asha", "asha@example.com", "password123", "", "", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login("asha@example.com", "password123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "patient", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("asha@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(db, "test-secret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		token, err := other.Register("Asha", "asha2@example.com", "password123", "", "", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
