package jwt

import (
	"colorclash-server/internal/config"
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "colorclash-server"

// Audience is the intended JWT audience
const Audience = "colorclash"

var secret []byte
var ttl time.Duration

// LoadSecret will load the signing secret from the configuration
// this method should only be called once.
func LoadSecret() {
	cfg := config.Instance().JWT
	if cfg.Secret == "" {
		logrus.Fatal("missing jwt secret in configuration")
	}

	SetSecret([]byte(cfg.Secret), time.Hour*time.Duration(cfg.TTLHours))
}

// SetSecret sets the HS256 secret and how long signed tokens are valid
func SetSecret(s []byte, tokenTTL time.Duration) {
	secret = s
	ttl = tokenTTL
}

// Sign will sign a JWT for the account ID
func Sign(accountID string) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  accountID,
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(secret)
}

// ValidAccountID will validate a signed JWT and return its subject
func ValidAccountID(signedString string) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, Audience) {
		return "", errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return "", errors.New("invalid issuer")
	}

	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}

	return claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
