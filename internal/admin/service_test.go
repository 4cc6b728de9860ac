package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), "test-secret", time.Hour)
}

func TestCreateAndLogin(t *testing.T) {
	svc := newTestService()

	p, err := svc.Create(context.Background(), "Admin@Example.COM", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", p.Email)
	require.NotEmpty(t, p.ID)
	require.NotEmpty(t, p.PasswordHash)

	token, err := svc.Login(context.Background(), "admin@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := NewTokenVerifier("test-secret").Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, p.ID, claims["sub"])
	require.Equal(t, "admin@example.com", claims["email"])
}

func TestCreate_RejectsWeakPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), "admin@example.com", "short")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "8 characters")
}

func TestCreate_RejectsBadEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), "not-an-email", "long enough password")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "admin@example.com", "another password")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownAccountIndistinguishable(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)

	_, err = NewTokenVerifier("other-secret").Verify(context.Background(), token)
	require.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret", -time.Minute)
	_, err := svc.Create(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), "admin@example.com", "long enough password")
	require.NoError(t, err)

	_, err = NewTokenVerifier("test-secret").Verify(context.Background(), token)
	require.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewTokenVerifier("test-secret").Verify(context.Background(), "not.a.token")
	require.Error(t, err)
}
