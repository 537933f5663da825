package domain

import "time"

// Game is a catalogued video game.
type Game struct {
	ID          string
	UUID        string
	Name        string
	Genre       string
	Storage     string
	ReleaseDate time.Time
	Cost        float64
	PlatformID  *string
	PlayerID    *string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
