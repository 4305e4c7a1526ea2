package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// Issuer is the registered claims issuer.
	Issuer = "shelfd"
	// KeyID is the version of the signing key.
	KeyID = "v1"
	// AccessTokenDuration is the lifetime of an access token.
	AccessTokenDuration = 7 * 24 * time.Hour
	// AccessTokenCookieName is the cookie that carries the access token.
	AccessTokenCookieName = "shelfd.access-token"

	// SigninCodeDuration is the lifetime of a one-time sign-in code used by
	// the redirect callback flow.
	SigninCodeDuration = 5 * time.Minute
)

type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the user, signed with
// HS256.
func GenerateAccessToken(username string, userID int32, expirationTime time.Time, secret []byte) (string, error) {
	expirationTimestamp := jwt.NewNumericDate(expirationTime)

	registeredClaims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   fmt.Sprint(userID),
		ExpiresAt: expirationTimestamp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	accessToken, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return accessToken, nil
}
