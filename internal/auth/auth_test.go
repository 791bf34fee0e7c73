package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"helpify.com/helpify/internal/constants"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestHashPasswordAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestDummyHash(t *testing.T) {
	hash := DummyHash()
	require.NotEmpty(t, hash)
	assert.Equal(t, hash, DummyHash())

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.False(t, CheckPassword("", hash))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, expiresAt, err := issuer.Issue("user-1", constants.UserTypeHelper)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, constants.UserTypeHelper, claims.UserType)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenIssuer(testSecret, time.Hour).Issue("user-1", constants.UserTypeClient)
	require.NoError(t, err)

	_, err = NewTokenIssuer("another-secret-another-secret-xx", time.Hour).Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := issuer.Issue("user-1", constants.UserTypeClient)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
