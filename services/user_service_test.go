package services

import (
	"errors"
	"testing"

	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_EnsureProfile(t *testing.T) {
	t.Run("Returns the existing profile untouched", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		existing := &models.UserProfile{ID: "user-1", Name: "Maria", TotalPoints: 300}
		userRepo.On("GetUserByID", "user-1").Return(existing, nil).Once()

		profile, err := service.EnsureProfile("user-1", "Maria Atualizada", "maria@example.com", "")

		require.NoError(t, err)
		assert.Same(t, existing, profile)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("Creates a profile on first sign-in from the provider claims", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		userRepo.On("GetUserByID", "user-1").Return(nil, nil).Once()
		userRepo.On("CreateUser", mock.MatchedBy(func(p *models.UserProfile) bool {
			return p.ID == "user-1" && p.Name == "Maria" && p.Email == "maria@example.com"
		})).Return(nil).Once()

		profile, err := service.EnsureProfile("user-1", "Maria", "maria@example.com", "https://example.com/pic.jpg")

		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Falls back to the default display name", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		userRepo.On("GetUserByID", "user-1").Return(nil, nil).Once()
		userRepo.On("CreateUser", mock.MatchedBy(func(p *models.UserProfile) bool {
			return p.Name == "Usuário"
		})).Return(nil).Once()

		profile, err := service.EnsureProfile("user-1", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Usuário", profile.Name)
	})

	t.Run("Rejects an empty subject", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		profile, err := service.EnsureProfile("", "Maria", "", "")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, utils.ErrUnauthenticated)
		userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything)
	})

	t.Run("Propagates a store failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		userRepo.On("GetUserByID", "user-1").Return(nil, errors.New("db offline")).Once()

		_, err := service.EnsureProfile("user-1", "Maria", "", "")

		assert.Error(t, err)
	})
}

func TestUserService_UpdateDeviceToken(t *testing.T) {
	t.Run("Stores the token for the caller", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		userRepo.On("UpdateDeviceToken", "user-1", "fcm-token-abc").Return(nil).Once()

		assert.NoError(t, service.UpdateDeviceToken("user-1", "fcm-token-abc"))
		userRepo.AssertExpectations(t)
	})

	t.Run("Rejects an empty subject", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository))

		assert.ErrorIs(t, service.UpdateDeviceToken("", "fcm-token-abc"), utils.ErrUnauthenticated)
	})
}

func TestUserService_SetNotificationsEnabled(t *testing.T) {
	t.Run("Records an opt-out", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo)

		userRepo.On("SetNotificationsEnabled", "user-1", false).Return(nil).Once()

		assert.NoError(t, service.SetNotificationsEnabled("user-1", false))
		userRepo.AssertExpectations(t)
	})
}
