package dto

import "time"

// PlayerRequest payload for create/update.
type PlayerRequest struct {
	Name   string  `json:"name"`
	UserID *string `json:"user_id"`
}

// PlayerResponse representation.
type PlayerResponse struct {
	ID        string    `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
