package applications

import (
	"errors"
	"time"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("already applied to this project")
	ErrProjectNotOpen       = errors.New("project is not open to applications")
	ErrOwnProject           = errors.New("cannot apply to your own project")
	ErrAlreadyDecided       = errors.New("application already decided")
	ErrInvalidStatus        = errors.New("invalid application status")
)

// Status constants
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// Application is a user's request to join a project.
type Application struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"-"`
	ProjectPublicID string    `json:"project_public_id"`
	ApplicantID     string    `json:"applicant_id"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
