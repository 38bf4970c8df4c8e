package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/repository"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// ProfileService reads and edits account profiles.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdate lists editable fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	Name            *string
	Bio             *string
	Location        *string
	Website         *string
	ProfileImageURL *string
}

// Get returns the profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies the non-nil fields of upd to userID's profile.
func (s *ProfileService) Update(ctx context.Context, userID int64, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be blank", nil)
		}
		user.Name = name
	}
	if upd.Bio != nil {
		user.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.Location != nil {
		user.Location = strings.TrimSpace(*upd.Location)
	}
	if upd.Website != nil {
		user.Website = strings.TrimSpace(*upd.Website)
	}
	if upd.ProfileImageURL != nil {
		user.ProfileImageURL = strings.TrimSpace(*upd.ProfileImageURL)
	}
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
