package services

import (
	"context"
	"fmt"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/internal/identity"
)

// ProfileService keeps the locally stored operator profile in sync
// with the identity provider.
type ProfileService struct {
	profiles domain.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles domain.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// EnsureProfile upserts the profile row for a signed-in user. It is
// called after every successful login.
func (s *ProfileService) EnsureProfile(ctx context.Context, user *identity.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("%w: user is missing an id", ErrInvalidInput)
	}
	return s.profiles.Upsert(ctx, &domain.Profile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName(),
		AvatarURL:   user.AvatarURL(),
		Provider:    user.AppMetadata.Provider,
		Username:    user.Username(),
	})
}

// Get returns the stored profile for a user id.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}
