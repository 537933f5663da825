package domain

import "time"

// Role enumerates granted authorities for a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Surname      string
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
