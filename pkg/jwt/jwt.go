package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt: secret vacío")

// Identity es lo que el token afirma sobre quien llama. VendorID es el tenant:
// todas las operaciones de equipos se filtran por él.
type Identity struct {
	UserID   string
	VendorID string
	Role     string // admin | vendor | technician
}

type claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	Role     string `json:"role"`
}

// Generate firma un token HS256 para id con vigencia ttl.
func Generate(secret, issuer string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   id.UserID,
		VendorID: id.VendorID,
		Role:     id.Role,
	})
	return token.SignedString([]byte(secret))
}

// Parse valida firma, algoritmo y expiración y devuelve la identidad del token.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrEmptySecret
	}
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("jwt: %w", err)
	}
	return Identity{UserID: c.UserID, VendorID: c.VendorID, Role: c.Role}, nil
}
