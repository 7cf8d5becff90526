package profiles

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("invalid profile role")
)

// Role constants
const (
	RoleMusician = "musician"
	RoleProducer = "producer"
	RoleVocalist = "vocalist"
	RoleEngineer = "engineer"
)

// Profile describes a musician/producer on the marketplace.
type Profile struct {
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Role        string            `json:"role"`
	Genres      []string          `json:"genres"`
	Bio         string            `json:"bio"`
	Location    string            `json:"location"`
	AvatarURL   string            `json:"avatar_url"`
	Links       map[string]string `json:"links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// UpdateProfile carries the fields a user may change. Nil means "leave as is".
type UpdateProfile struct {
	DisplayName *string           `json:"display_name"`
	Role        *string           `json:"role"`
	Genres      []string          `json:"genres"`
	Bio         *string           `json:"bio"`
	Location    *string           `json:"location"`
	AvatarURL   *string           `json:"avatar_url"`
	Links       map[string]string `json:"links"`
}

// ValidRole checks a role string against the known set.
func ValidRole(role string) bool {
	switch role {
	case RoleMusician, RoleProducer, RoleVocalist, RoleEngineer:
		return true
	}
	return false
}
