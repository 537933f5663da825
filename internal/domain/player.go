package domain

import "time"

// Player owns games in the catalog. A player may be bound to a user account.
type Player struct {
	ID        string
	UUID      string
	Name      string
	UserID    *string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
