package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("reader", 7, time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &ClaimsMessage{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "reader", claims.Name)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, KeyID, parsed.Header["kid"])
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("reader", 7, time.Now().Add(-time.Hour), secret)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &ClaimsMessage{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateAccessToken("reader", 7, time.Now().Add(time.Hour), []byte("right"))
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &ClaimsMessage{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}
