package matches

import (
	"errors"
	"time"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrInvalidStatus     = errors.New("invalid match status")
	ErrInvalidTransition = errors.New("match is no longer active")
)

// Status constants
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Match pairs a project owner with an accepted applicant.
type Match struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"-"`
	ProjectPublicID string    `json:"project_public_id"`
	ApplicationID   string    `json:"application_id"`
	OwnerID         string    `json:"owner_id"`
	CollaboratorID  string    `json:"collaborator_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Participant reports whether a user is on either side of the match.
func (m *Match) Participant(userID string) bool {
	return m.OwnerID == userID || m.CollaboratorID == userID
}
