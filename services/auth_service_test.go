package services

import (
	"context"
	"testing"

	"okrproject/middlewares"
	"okrproject/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAuthService() (AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, testSecret), users
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "  Ana@Example.com ",
		Password:  "hunter22",
		FirstName: "Ana",
		LastName:  "Garcia",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.False(t, user.ID.IsZero())
	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "hunter22",
		FirstName: "Ana",
		LastName:  "Garcia",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "hunter22",
		FirstName: "Ana",
		LastName:  "Garcia",
	})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims := &middlewares.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, &models.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "hunter22",
		FirstName: "Ana",
		LastName:  "Garcia",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
