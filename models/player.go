package models

import "time"

// PlayerHistory is one past team assignment of a player.
type PlayerHistory struct {
	TeamID    int       `json:"teamId"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Player is identified by its business id, not the storage-internal row id.
// The id is immutable once assigned.
type Player struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	IngameName string          `json:"ingameName"`
	Role       string          `json:"playerRole"`
	Birthday   time.Time       `json:"birthday"`
	TeamID     int             `json:"teamId"`
	History    []PlayerHistory `json:"history"`
}
