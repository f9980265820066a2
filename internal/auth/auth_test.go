package auth_test

import (
	"testing"
	"time"

	"github.com/bradyhq/dealdesk/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	assert.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")

	ok, err := hasher.Verify("correct horse battery staple", encoded)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", encoded)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordVerifyRejectsMalformedHash(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	_, err := hasher.Verify("anything", "not-an-encoded-hash")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	userID := uuid.New().String()

	token, err := tm.Generate(userID, "alice", "PARTNER")
	assert.NoError(t, err)

	claims, err := tm.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "PARTNER", claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	token, err := tm.Generate(uuid.New().String(), "alice", "PARTNER")
	assert.NoError(t, err)

	other := auth.NewTokenManager("different_secret", time.Hour)
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", -time.Minute)
	token, err := tm.Generate(uuid.New().String(), "alice", "PARTNER")
	assert.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}
