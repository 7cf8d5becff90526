package messages

import (
	"errors"
	"time"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("not a participant in this match")
	ErrEmptyBody       = errors.New("message body required")
	ErrBodyTooLong     = errors.New("message body too long")
)

const maxBodyLen = 4000

// Message is a single chat entry inside a match conversation.
type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
