package service

import (
	"context"
	"strings"

	"skillshare/internal/models"
	"skillshare/internal/repository"
	"skillshare/internal/validation"
)

// UserService manages user profiles.
type UserService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

// UserDetail is a profile together with its follow counts.
type UserDetail struct {
	models.UserProfile
	Email          string `json:"email"`
	FollowersCount int64  `json:"followersCount"`
	FollowingCount int64  `json:"followingCount"`
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository) *UserService {
	return &UserService{users: users, follows: follows}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserDetail returns the user with follower and following counts.
func (s *UserService) GetUserDetail(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.follows.Counts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserDetail{
		UserProfile:    user.Profile(),
		Email:          user.Email,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// GetByEmail resolves a user by email, returning NOT_FOUND when absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile replaces the editable profile fields of user id.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (*models.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Firstname = strings.TrimSpace(req.Firstname)
	user.Lastname = strings.TrimSpace(req.Lastname)
	user.ProfilePic = strings.TrimSpace(req.ProfilePic)
	user.Bio = req.Bio
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user row. Posts, notifications and follow edges stay.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
