package projects

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidStatus     = errors.New("invalid project status")
	ErrInvalidTransition = errors.New("invalid project status transition")
)

// Status constants
const (
	StatusOpen     = "open"
	StatusClosed   = "closed"
	StatusArchived = "archived"
)

// Project is a collaboration listing, open to applications while status is open.
type Project struct {
	PublicID    string    `json:"public_id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	LookingFor  []string  `json:"looking_for"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func validStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed || s == StatusArchived
}

// canTransition validates a status change. Reopening a closed listing is
// allowed; archived is terminal.
func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusOpen:
		return to == StatusClosed || to == StatusArchived
	case StatusClosed:
		return to == StatusOpen || to == StatusArchived
	}
	return false
}
