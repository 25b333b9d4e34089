// Package auth mints and verifies the HS256 bearer tokens used between the
// metadata client and server. Both sides share a secret: the client signs a
// short-lived token naming the project it acts on, the server middleware
// verifies it before letting a request through.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/metastore/internal/common"
)

// Claims carries the standard registered claims plus the project the token
// grants access to.
type Claims struct {
	jwt.RegisteredClaims
	Project string
}

// GenerateToken signs a token for the given project, valid for
// validityDuration from now. The issued-at claim is set so verifiers can
// bound the total lifetime the client granted itself.
func GenerateToken(project string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Project: project,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetProjectFromToken parses and verifies tokenString and returns the
// project claim. Invalid, expired, or foreign-keyed tokens yield
// common.ErrInvalidToken (wrapped parse errors are returned as-is so the
// caller can log the cause).
//
// maxAge > 0 additionally caps the total lifetime the token was minted
// with: clients sign their own tokens, so without the cap a client could
// grant itself an arbitrarily distant expiry. Tokens lacking the issued-at
// claim, or spanning more than maxAge between issue and expiry, are
// rejected.
func GetProjectFromToken(tokenString string, secretKey []byte, maxAge time.Duration) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if maxAge > 0 {
		if claims.IssuedAt == nil || claims.ExpiresAt == nil {
			return "", common.ErrInvalidToken
		}
		if claims.ExpiresAt.Sub(claims.IssuedAt.Time) > maxAge {
			return "", common.ErrInvalidToken
		}
	}

	return claims.Project, nil
}
