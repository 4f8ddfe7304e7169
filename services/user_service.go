package services

import (
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/repository"
	"github.com/CassioNunes77/randomly/utils"
)

// defaultUserName is used when the identity provider supplies no display name.
const defaultUserName = "Usuário"

// UserService manages user profiles: lazy creation on first sign-in and the
// device-token / notification-preference updates the client issues.
type UserService interface {
	EnsureProfile(userID, name, email, profileImageURL string) (*models.UserProfile, error)
	UpdateDeviceToken(userID, token string) error
	SetNotificationsEnabled(userID string, enabled bool) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates the user profile service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// EnsureProfile returns the profile for the given identity subject, creating
// it from the provider's claims when it does not exist yet.
func (s *userService) EnsureProfile(userID, name, email, profileImageURL string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, utils.ErrUnauthenticated
	}

	existing, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile %s: %w", userID, err)
	}
	if existing != nil {
		return existing, nil
	}

	if name == "" {
		name = defaultUserName
	}
	profile := &models.UserProfile{
		ID:              userID,
		Name:            name,
		Email:           email,
		ProfileImageURL: profileImageURL,
		CreatedAt:       time.Now(),
	}
	if err := s.userRepo.CreateUser(profile); err != nil {
		return nil, fmt.Errorf("ensure profile %s: %w", userID, err)
	}
	log.Printf("INFO: [UserService] Created profile for first-time sign-in of user %s.", userID)
	return profile, nil
}

// UpdateDeviceToken stores the push token the client registered for this user.
func (s *userService) UpdateDeviceToken(userID, token string) error {
	if userID == "" {
		return utils.ErrUnauthenticated
	}
	if err := s.userRepo.UpdateDeviceToken(userID, token); err != nil {
		return fmt.Errorf("update device token for %s: %w", userID, err)
	}
	return nil
}

// SetNotificationsEnabled records the user's digest opt-in choice.
func (s *userService) SetNotificationsEnabled(userID string, enabled bool) error {
	if userID == "" {
		return utils.ErrUnauthenticated
	}
	if err := s.userRepo.SetNotificationsEnabled(userID, enabled); err != nil {
		return fmt.Errorf("set notifications for %s: %w", userID, err)
	}
	return nil
}
