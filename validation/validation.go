// Package validation holds the pure request validators. Each validator
// inspects a decoded body (or path parameter) and reports the first
// violated constraint; a non-nil error always halts the handler chain.
package validation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/riftbook/stats-system/models"
)

func ValidateLogin(username, password string) error {
	if username == "" || password == "" {
		return errors.New("please provide both username and password")
	}
	return nil
}

func ValidateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return errors.New("please provide username, email, and password")
	}
	return nil
}

func ValidateForgotPassword(email string) error {
	if email == "" {
		return errors.New("please provide an email address")
	}
	return nil
}

func ValidatePlayer(player *models.Player) error {
	if player.ID <= 0 {
		return errors.New("player id must be a positive number")
	}
	if player.Name == "" || player.IngameName == "" || player.Role == "" {
		return errors.New("missing required fields: name, ingameName, and playerRole are required")
	}
	if player.Birthday.IsZero() {
		return errors.New("birthday is required")
	}
	return nil
}

func ValidateTeam(team *models.Team) error {
	if team.ID <= 0 {
		return errors.New("team id must be a positive number")
	}
	if team.Name == "" || team.IngameName == "" {
		return errors.New("missing required fields: name and ingameName are required")
	}
	if team.FoundDate.IsZero() {
		return errors.New("foundDate is required")
	}
	if team.CurrentPlayers == nil {
		return errors.New("currentPlayers must be an array of player ids")
	}
	for i, entry := range team.PlayerHistory {
		if entry.PlayerID <= 0 || entry.Name == "" || entry.Role == "" ||
			entry.StartDate.IsZero() || entry.EndDate.IsZero() {
			return fmt.Errorf("entry at index %d in playerHistory is missing required fields", i)
		}
	}
	return nil
}

// ValidateGame enforces the cross-field game rules: a positive duration,
// a patch version, exactly two teams and exactly one winner among them.
// Numeric stat fields are type-checked at decode time already.
func ValidateGame(game *models.Game) error {
	if game.Duration <= 0 {
		return errors.New("duration must be a positive number")
	}
	if game.Patch == "" {
		return errors.New("missing required field: patch")
	}
	if len(game.Teams) != 2 {
		return errors.New("teams must be an array with exactly 2 teams")
	}

	wins := 0
	for i, team := range game.Teams {
		if team.TeamID <= 0 || team.TeamName == "" {
			return fmt.Errorf("team at index %d is missing required fields: teamId and teamName", i)
		}
		switch team.Result {
		case models.ResultWin:
			wins++
		case models.ResultLoss:
		default:
			return fmt.Errorf("team at index %d has invalid result, must be %q or %q", i, models.ResultWin, models.ResultLoss)
		}
		if team.Players == nil {
			return fmt.Errorf("team at index %d must have a players array", i)
		}
		for j, player := range team.Players {
			if player.PlayerID <= 0 || player.PlayerName == "" || player.Role == "" {
				return fmt.Errorf("player at index %d in team %d is missing required fields: playerId, playerName, and role", j, i)
			}
		}
	}
	if wins != 1 {
		return errors.New("exactly one team must have a \"win\" result")
	}
	return nil
}

// ParseID validates a numeric business id path parameter.
func ParseID(name, raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return id, nil
}
