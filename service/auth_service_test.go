// file: service/auth_service_test.go

package service

import (
	"context"
	"go-ledger-api/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeTokenStore is an in-memory ITokenStore for unit tests.
type fakeTokenStore struct {
	tokens map[string]int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int)}
}

func (s *fakeTokenStore) Save(_ context.Context, tokenHash string, userID int, _ time.Duration) error {
	s.tokens[tokenHash] = userID
	return nil
}

func (s *fakeTokenStore) Get(_ context.Context, tokenHash string) (int, error) {
	userID, ok := s.tokens[tokenHash]
	if !ok {
		return 0, ErrInvalidRefreshToken
	}
	return userID, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, tokenHash string) error {
	delete(s.tokens, tokenHash)
	return nil
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// HashPassword and CheckPasswordHash don't use any dependencies, so
	// AuthService can be instantiated with nil collaborators here.
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	match := authService.CheckPasswordHash(password, hashedPassword)
	if !match {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	wrongPassword := "notMyPassword"
	match = authService.CheckPasswordHash(wrongPassword, hashedPassword)
	if match {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	config.AppConfig.JWT.SecretKey = "unit-test-secret"

	store := newFakeTokenStore()
	authService := NewAuthService(nil, store)
	ctx := context.Background()

	refreshToken, err := generateRefreshToken()
	assert.NoError(t, err)
	assert.NoError(t, store.Save(ctx, hashToken(refreshToken), 7, time.Hour))

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		accessToken, err := authService.Refresh(ctx, refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("unknown refresh token is rejected", func(t *testing.T) {
		_, err := authService.Refresh(ctx, "never-issued")
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		assert.NoError(t, authService.Logout(ctx, refreshToken))

		_, err := authService.Refresh(ctx, refreshToken)
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}
