package services

import (
	"context"
	"strings"

	"terranova/internal/models"
	"terranova/internal/repositories"
	"terranova/internal/validation"
)

// UserService manages the signed-in user's profile.
type UserService struct {
	repo     repositories.UserRepository
	validate *validation.Validator
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo:     repo,
		validate: validation.New(),
	}
}

// GetProfile returns the user with the given ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of upd to the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	if err := s.validate.Validate(upd); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Location != nil {
		user.Location = strings.TrimSpace(*upd.Location)
	}
	if upd.Image != nil {
		user.Image = *upd.Image
	}
	if upd.SkillLevel != nil {
		user.SkillLevel = *upd.SkillLevel
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and, by cascade, all of their projects.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
