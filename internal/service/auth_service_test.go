package service

import (
	"context"
	"testing"
	"time"

	"skillshare/internal/auth"
	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUsers is an email-indexed user repo used by auth tests.
func memoryUsers() *userRepoStub {
	byEmail := map[string]*models.User{}
	var next uint = 1
	repo := usersWithIDs()
	repo.createFn = func(_ context.Context, u *models.User) error {
		if _, ok := byEmail[u.Email]; ok {
			return models.NewConflictError("Email already registered: " + u.Email)
		}
		u.ID = next
		next++
		cp := *u
		byEmail[u.Email] = &cp
		return nil
	}
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		u, ok := byEmail[email]
		if !ok {
			return nil, nil
		}
		cp := *u
		return &cp, nil
	}
	return repo
}

func newAuthService(t *testing.T) (*AuthService, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret-that-is-long-enough-0123", "skillshare", time.Hour)
	return NewAuthService(memoryUsers(), &auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens), tokens
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAuthService(t)

	reg, err := svc.Register(ctx, models.RegisterRequest{
		Email: "Ana@Example.com", Password: "secret1", Firstname: "Ana", Lastname: "Lift",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ana", reg.User.Firstname)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := tokens.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
	assert.WithinDuration(t, claims.ExpiresAt, login.ExpiresAt, time.Second)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	req := models.RegisterRequest{Email: "dup@example.com", Password: "secret1", Firstname: "A", Lastname: "B"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	resp, err := svc.Register(ctx, req)
	assert.Nil(t, resp, "no token is issued for a duplicate")
	assertAppError(t, err, models.CodeConflict)
	assert.Contains(t, err.Error(), "dup@example.com")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "bad", Password: "1"})
	assertAppError(t, err, models.CodeValidation)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	_, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.co", Password: "secret1", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@b.co", Password: "secret1"})
	assertAppError(t, err, models.CodeNotFound)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "wrong!"})
	assertAppError(t, err, models.CodeUnauthorized)
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	_, err := svc.Register(ctx, models.RegisterRequest{Email: "me@b.co", Password: "secret1", Firstname: "M", Lastname: "E"})
	require.NoError(t, err)

	_, err = svc.Me(ctx)
	assertAppError(t, err, models.CodeUnauthorized)

	user, err := svc.Me(auth.WithIdentity(ctx, auth.Identity{Email: "me@b.co"}))
	require.NoError(t, err)
	assert.Equal(t, "M", user.Firstname)

	_, err = svc.Me(auth.WithIdentity(ctx, auth.Identity{Email: "ghost@b.co"}))
	assertAppError(t, err, models.CodeUnauthorized)
}
