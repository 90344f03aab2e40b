package service

import (
	"context"
	"strings"
	"time"

	"skillshare/internal/auth"
	"skillshare/internal/models"
	"skillshare/internal/repository"
	"skillshare/internal/validation"
)

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates the user and issues a token. A used email is a CONFLICT
// and no token is issued.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered: " + req.Email)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		Email:     req.Email,
		Password:  digest,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.respond(user)
}

// Login verifies the credentials. An unknown email is NOT_FOUND and a
// password mismatch is UNAUTHORIZED.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", req.Email)
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return s.respond(user)
}

// Me resolves the caller's identity to a user.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	user, err := s.users.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return user, nil
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user.Profile()}, nil
}
