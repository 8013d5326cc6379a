package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User is a directory entry. Credentials and sessions live in the external
// auth service; this core only needs a stable id and the public profile.
type User struct {
	gorm.Model  `json:"-"`
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex"` // Ensure name is unique across all users
	Picture     *string `json:"picture,omitempty"`
	DateOfBirth *int64  `json:"date_of_birth,omitempty"` // Unix seconds
}

// UserSummary is the public profile shape embedded in friend listings
type UserSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Picture     *string `json:"picture,omitempty"`
	DateOfBirth *int64  `json:"date_of_birth,omitempty"`
}

// Summary projects the public profile fields of a user
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Picture:     u.Picture,
		DateOfBirth: u.DateOfBirth,
	}
}

type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Picture     *string `json:"picture,omitempty"`
	DateOfBirth *int64  `json:"date_of_birth,omitempty"`
}

type UpdateUserRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Picture     *string `json:"picture,omitempty"`
	DateOfBirth *int64  `json:"date_of_birth,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
