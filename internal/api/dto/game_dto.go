package dto

import "time"

// GameRequest payload for create/update.
type GameRequest struct {
	Name        string  `json:"name"`
	Genre       string  `json:"genre"`
	Storage     string  `json:"storage"`
	ReleaseDate string  `json:"release_date"`
	Cost        float64 `json:"cost"`
	PlatformID  *string `json:"platform_id"`
	PlayerID    *string `json:"player_id"`
}

// GameResponse representation.
type GameResponse struct {
	ID          string    `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Genre       string    `json:"genre"`
	Storage     string    `json:"storage"`
	ReleaseDate string    `json:"release_date"`
	Cost        float64   `json:"cost"`
	PlatformID  *string   `json:"platform_id,omitempty"`
	PlayerID    *string   `json:"player_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
