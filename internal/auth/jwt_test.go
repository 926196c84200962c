package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "dungeonhub-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign("0xabc", "game-token")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", claims.Account)
	assert.Equal(t, "game-token", claims.GameToken)
	assert.Equal(t, "dungeonhub-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := testTokens()
	token, _, err := ts.Sign("0xabc", "game-token")
	require.NoError(t, err)

	other := testTokens()
	other.Secret = []byte("different")
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign("0xabc", "game-token")
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testTokens().Parse("not-a-jwt")
	assert.Error(t, err)
}
