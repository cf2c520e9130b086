package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParsePair(t *testing.T) {
	m := NewTokenManager("test-secret", 0, 0)
	userID := uuid.New()

	pair, err := m.IssuePair(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	accessClaims, err := m.Parse(pair.Access, UseAccess)
	require.NoError(t, err)
	gotID, err := accessClaims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.NotEmpty(t, accessClaims.ID)

	refreshClaims, err := m.Parse(pair.Refresh, UseRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)
}

func TestParseRejectsWrongUse(t *testing.T) {
	m := NewTokenManager("test-secret", 0, 0)
	pair, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(pair.Access, UseRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
	_, err = m.Parse(pair.Refresh, UseAccess)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	pair, err := NewTokenManager("secret-a", 0, 0).IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 0, 0).Parse(pair.Access, UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, -time.Minute)
	pair, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(pair.Access, UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 0, 0)
	_, err := m.Parse("not-a-token", UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
