package service

import (
	"time"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// Notification snapshots are flattened copies of the entity at commit
// time; they are what change events carry over the wire.

type platformSnapshot struct {
	ID           string    `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Kind         string    `json:"kind"`
	ReleaseDate  string    `json:"release_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func snapshotPlatform(p *domain.Platform) platformSnapshot {
	return platformSnapshot{
		ID:           p.ID,
		UUID:         p.UUID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		Kind:         p.Kind,
		ReleaseDate:  p.ReleaseDate.Format("2006-01-02"),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type playerSnapshot struct {
	ID        string    `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func snapshotPlayer(p *domain.Player) playerSnapshot {
	return playerSnapshot{
		ID:        p.ID,
		UUID:      p.UUID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type gameSnapshot struct {
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

func snapshotGame(g *domain.Game) gameSnapshot {
	return gameSnapshot{
		ID:          g.ID,
		UUID:        g.UUID,
		Name:        g.Name,
		Genre:       g.Genre,
		Storage:     g.Storage,
		ReleaseDate: g.ReleaseDate.Format("2006-01-02"),
		Cost:        g.Cost,
		PlatformID:  g.PlatformID,
		PlayerID:    g.PlayerID,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
