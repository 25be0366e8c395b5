package auth

import (
	"time"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

// Config drives authentication behavior.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
}

// User represents a persisted account together with its drinking profile.
type User struct {
	ID            int64
	Email         string
	Nickname      string
	PasswordHash  string
	BiologicalSex *bac.Sex
	WeightKg      *float64
	ZipCode       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfilePatch lists the fields changed by a profile update. Nil means untouched.
type ProfilePatch struct {
	BiologicalSex *bac.Sex
	WeightKg      *float64
	ZipCode       *string
}

// RegisterRequest captures the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields.
type UserView struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Nickname      string    `json:"nickname"`
	BiologicalSex *bac.Sex  `json:"biologicalSex,omitempty"`
	WeightKg      *float64  `json:"weightInKg,omitempty"`
	ZipCode       *string   `json:"zipCode,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UpdateProfileRequest is a partial profile update.
type UpdateProfileRequest struct {
	BiologicalSex *string  `json:"biologicalSex"`
	WeightKg      *float64 `json:"weightInKg"`
	ZipCode       *string  `json:"zipCode"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	UserID    int64
	Email     string
	TokenType string
	ExpiresAt time.Time
}

// RefreshRequest encapsulates refresh token payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
