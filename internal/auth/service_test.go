package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
)

type fakeIssuer struct {
	token string
	err   error
	ttl   time.Duration
}

func (fake *fakeIssuer) GenerateAccessToken(timeToLive time.Duration) (string, error) {
	fake.ttl = timeToLive
	return fake.token, fake.err
}

func newTestService(t *testing.T, issuer TokenIssuer) *Service {
	t.Helper()
	hash, err := sec.HashPassword("mellon")
	require.NoError(t, err)
	return NewService(issuer, hash, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLogin_IssuesTokenForCorrectPassword(t *testing.T) {
	issuer := &fakeIssuer{token: "signed-token"}
	service := newTestService(t, issuer)

	result, err := service.Login(context.Background(), "mellon")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, "Authentication successful", result.Message)
	assert.Equal(t, 24*time.Hour, issuer.ttl)
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	service := newTestService(t, &fakeIssuer{token: "signed-token"})

	_, err := service.Login(context.Background(), "friend")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogin_RejectsEmptyPassword(t *testing.T) {
	issuer := &fakeIssuer{token: "signed-token"}
	service := newTestService(t, issuer)

	_, err := service.Login(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Zero(t, issuer.ttl)
}

func TestLogin_WrapsSigningFailure(t *testing.T) {
	service := newTestService(t, &fakeIssuer{err: errors.New("keysmith on strike")})

	_, err := service.Login(context.Background(), "mellon")
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
}
