// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the context key under which the auth middleware stores the
// authenticated user's ID.
const UserIDKey contextKey = "user_id"

// User is an account that owns flashcards and generation sessions.
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the public subset of User returned by the auth endpoints.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type RegisterResponse struct {
	User AuthUser `json:"user"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}
