package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies admin API tokens
type TokenService interface {
	GenerateToken(ctx context.Context, subject string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*AdminClaims, error)
}

// AdminClaims represents the JWT claims of an admin token
type AdminClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}
