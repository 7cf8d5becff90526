package users

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the local record mirroring a Firebase identity.
type User struct {
	ID          string     `json:"id"`
	FirebaseUID string     `json:"firebase_uid"`
	Email       *string    `json:"email,omitempty"`
	DisplayName *string    `json:"display_name,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// UpsertUser carries the identity fields synced from a verified token.
type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}
