package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := GenerateAccessToken("u-1", "Aisha Khan", "aisha@example.com", "student", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Aisha Khan", claims.Name)
	assert.Equal(t, "aisha@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := GenerateAccessToken("u-1", "n", "", "student", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateAccessToken(tok, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	tok, err := GenerateAccessToken("u-1", "n", "", "student", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAccessToken(tok, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "u-1",
		Role:   "distributor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    issuer,
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAccessToken(tok, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken("u-1", "n", "", "student", "", time.Hour)
	assert.Error(t, err)
}
