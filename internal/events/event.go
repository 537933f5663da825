package events

import "time"

// ChangeKind enumerates the mutation types broadcast to clients.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "CREATE"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// EntityKind identifies which catalog collection changed.
type EntityKind string

const (
	EntityPlatforms EntityKind = "PLATFORMS"
	EntityPlayers   EntityKind = "PLAYERS"
	EntityGames     EntityKind = "GAMES"
)

// ChangeEvent describes one committed mutation. Data carries a snapshot
// of the entity as it was at commit time.
type ChangeEvent struct {
	Entity    EntityKind `json:"entity"`
	Kind      ChangeKind `json:"kind"`
	Data      any        `json:"data"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewChangeEvent stamps a change event with the current time.
func NewChangeEvent(entity EntityKind, kind ChangeKind, data any) ChangeEvent {
	return ChangeEvent{
		Entity:    entity,
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}
