package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/metastore/internal/common"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("alpha", secret, time.Minute)
	require.NoError(t, err)

	project, err := GetProjectFromToken(token, secret, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "alpha", project)
}

func TestGetProjectFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("alpha", []byte("secret"), time.Minute)
	require.NoError(t, err)

	_, err = GetProjectFromToken(token, []byte("other"), time.Minute)
	require.Error(t, err)
}

func TestGetProjectFromToken_Expired(t *testing.T) {
	token, err := GenerateToken("alpha", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = GetProjectFromToken(token, []byte("secret"), time.Minute)
	require.Error(t, err)
}

func TestGetProjectFromToken_Garbage(t *testing.T) {
	_, err := GetProjectFromToken("not.a.token", []byte("secret"), time.Minute)
	require.Error(t, err)
}

func TestGetProjectFromToken_LifetimeCap(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("alpha", secret, time.Hour)
	require.NoError(t, err)

	// A token minted for longer than the cap is rejected...
	_, err = GetProjectFromToken(token, secret, time.Minute)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	// ...but accepted when the cap allows it, or when no cap is set.
	project, err := GetProjectFromToken(token, secret, 2*time.Hour)
	require.NoError(t, err)
	require.Equal(t, "alpha", project)

	_, err = GetProjectFromToken(token, secret, 0)
	require.NoError(t, err)
}

func TestGetProjectFromToken_MissingIssuedAtRejectedUnderCap(t *testing.T) {
	secret := []byte("secret")

	// Hand-built token without an iat claim.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Project: "alpha",
	})
	token, err := raw.SignedString(secret)
	require.NoError(t, err)

	_, err = GetProjectFromToken(token, secret, time.Minute)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
