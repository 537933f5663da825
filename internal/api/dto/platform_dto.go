package dto

import "time"

// PlatformRequest payload for create/update.
type PlatformRequest struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Kind         string `json:"kind"`
	ReleaseDate  string `json:"release_date"`
}

// PlatformResponse representation.
type PlatformResponse struct {
	ID           string    `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Kind         string    `json:"kind"`
	ReleaseDate  string    `json:"release_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
