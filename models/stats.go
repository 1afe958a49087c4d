package models

// TeamWinRate is a per-team aggregate across one user's games.
type TeamWinRate struct {
	TeamID     int     `json:"teamId"`
	TeamName   string  `json:"teamName"`
	TotalGames int     `json:"totalGames"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"winRate"`
}

// PlayerKDA is a per-player aggregate across one user's games.
// KDA is (kills+assists)/deaths over the summed totals; a player with
// zero deaths gets their raw kill total instead.
type PlayerKDA struct {
	PlayerID   int     `json:"playerId"`
	PlayerName string  `json:"playerName"`
	TotalGames int     `json:"totalGames"`
	AvgKills   float64 `json:"avgKills"`
	AvgDeaths  float64 `json:"avgDeaths"`
	AvgAssists float64 `json:"avgAssists"`
	KDA        float64 `json:"kda"`
}

type GameStats struct {
	TotalGames int           `json:"totalGames"`
	TeamStats  []TeamWinRate `json:"teamStats"`
	TopPlayers []PlayerKDA   `json:"topPlayers"`
}
