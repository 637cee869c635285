package service

import (
	"context"
	"errors"
	"strings"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/repository"
)

// ProfileUpdate carries the profile fields to change; nil fields are left alone
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Avatar *string
	Role   *string
}

// ProfileService reads and edits the signed-in user
type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Me returns the user behind the session
func (s *ProfileService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, apperr.Internal("Error fetching profile", err)
	}
	return user, nil
}

// Update edits the profile. A role change is visible to the next role-guarded request.
func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("Name cannot be empty")
		}
		fields["name"] = name
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Avatar != nil && *in.Avatar != "" {
		fields["avatar"] = *in.Avatar
	}
	if in.Role != nil && *in.Role != "" {
		role := strings.ToLower(*in.Role)
		if !domain.IsValidRole(role) {
			return nil, apperr.Validation("Invalid role. Must be 'artist' or 'buyer'")
		}
		fields["role"] = role
	}
	user, err := s.users.Update(ctx, userID, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, apperr.Internal("Error updating profile", err)
	}
	return user, nil
}
