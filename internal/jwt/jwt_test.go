package jwt

import (
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func signClaims(t *testing.T, method jwtgo.SigningMethod, key interface{}, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	signed, err := jwtgo.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	return signed
}

func TestSignAndValidAccountID(t *testing.T) {
	SetSecret(testSecret, time.Hour)

	sign, err := Sign("acct-18")
	assert.NoError(t, err)

	id, err := ValidAccountID(sign)
	assert.NoError(t, err)
	assert.Equal(t, "acct-18", id)
}

func TestValidAccountID_WrongSecret(t *testing.T) {
	SetSecret([]byte("other-secret"), time.Hour)
	sign, err := Sign("acct-18")
	assert.NoError(t, err)

	SetSecret(testSecret, time.Hour)
	id, err := ValidAccountID(sign)
	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestValidAccountID_InvalidAudience(t *testing.T) {
	SetSecret(testSecret, time.Hour)

	signedToken := signClaims(t, jwtgo.SigningMethodHS256, testSecret, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "acct-15",
	})

	id, err := ValidAccountID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Empty(t, id)
}

func TestValidAccountID_InvalidIssuer(t *testing.T) {
	SetSecret(testSecret, time.Hour)

	signedToken := signClaims(t, jwtgo.SigningMethodHS256, testSecret, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "acct-15",
	})

	id, err := ValidAccountID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Empty(t, id)
}

func TestValidAccountID_Expired(t *testing.T) {
	SetSecret(testSecret, time.Hour)

	signedToken := signClaims(t, jwtgo.SigningMethodHS256, testSecret, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now().Add(time.Hour * -2)),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    Issuer,
		Subject:   "acct-15",
	})

	id, err := ValidAccountID(signedToken)
	assert.ErrorIs(t, err, jwtgo.ErrTokenExpired)
	assert.Empty(t, id)
}

func TestValidAccountID_WrongMethod(t *testing.T) {
	SetSecret(testSecret, time.Hour)

	signedToken := signClaims(t, jwtgo.SigningMethodNone, jwtgo.UnsafeAllowNoneSignatureType, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
		Subject:  "acct-15",
	})

	_, err := ValidAccountID(signedToken)
	assert.Error(t, err)
}
