package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role values recognised by the API.
const (
	RoleAdmin     = "ADMIN"
	RoleProfessor = "PROFESSOR"
)

// JWTClaims is the access token payload.
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	IssuedAt    time.Time `json:"issuedAt"`
	Role        string    `json:"role"`
}
