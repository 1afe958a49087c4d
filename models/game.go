package models

import "time"

type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
)

// PlayerPerformance is one player's stat line within a game.
type PlayerPerformance struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     int    `json:"teamId"`
	Role       string `json:"role"`
	Kills      int    `json:"kills"`
	Deaths     int    `json:"deaths"`
	Assists    int    `json:"assists"`
	CS         int    `json:"cs"`
	Gold       int    `json:"gold"`
}

// TeamPerformance is one side of a game. Exactly one of the two sides
// carries ResultWin.
type TeamPerformance struct {
	TeamID       int                 `json:"teamId"`
	TeamName     string              `json:"teamName"`
	TotalKills   int                 `json:"totalKills"`
	TotalDeaths  int                 `json:"totalDeaths"`
	TotalAssists int                 `json:"totalAssists"`
	Dragons      int                 `json:"dragons"`
	Barons       int                 `json:"barons"`
	Towers       int                 `json:"towers"`
	Result       GameResult          `json:"result"`
	Players      []PlayerPerformance `json:"players"`
}

// Game records are owned by the user that created them; every read,
// update and delete of a specific game checks that ownership.
type Game struct {
	GameID      int               `json:"gameId"`
	Date        time.Time         `json:"date"`
	Duration    int               `json:"duration"` // minutes
	Patch       string            `json:"patch"`
	Teams       []TeamPerformance `json:"teams"`
	MVPPlayerID *int              `json:"mvpPlayerId,omitempty"`
	UserID      int               `json:"userId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
