package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is a registered form author
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// UserClaims are JWT claims for an authenticated user
type UserClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CredentialsRequest is the request body for register and login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the public part of a user
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
