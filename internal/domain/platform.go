package domain

import "time"

// Platform is a gaming platform in the catalog.
type Platform struct {
	ID           string
	UUID         string
	Name         string
	Manufacturer string
	Kind         string
	ReleaseDate  time.Time
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
