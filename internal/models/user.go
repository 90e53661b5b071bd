package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// User is the owning actor for pains, reactions and comments.
type User struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	HexID       string    `json:"hexid" gorm:"size:16;uniqueIndex;not null"` // short public handle used in list filters
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	FirebaseUID string    `json:"-" gorm:"index"`
	FCMToken    string    `json:"-"` // push destination, optional
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// NewHexID returns a random 10-character hex handle.
func NewHexID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to a
		// uuid-derived handle rather than panicking in a request path.
		return hex.EncodeToString(uuid.New().NodeID())[:10]
	}
	return hex.EncodeToString(b)
}

// RegisterUserRequest defines the body for local registration.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FCMToken string `json:"fcm_token" validate:"omitempty,max=4096"`
}

// SignInRequest defines the body for local authentication.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
