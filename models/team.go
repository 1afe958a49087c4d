package models

import "time"

// TeamPlayerHistory is one past roster assignment of a team.
type TeamPlayerHistory struct {
	PlayerID  int       `json:"playerId"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type Team struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	IngameName     string              `json:"ingameName"`
	FoundDate      time.Time           `json:"foundDate"`
	CurrentPlayers []int64             `json:"currentPlayers"`
	PlayerHistory  []TeamPlayerHistory `json:"playerHistory"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// OnRoster reports whether the player id is in the team's current roster.
func (t *Team) OnRoster(playerID int) bool {
	for _, id := range t.CurrentPlayers {
		if id == int64(playerID) {
			return true
		}
	}
	return false
}
