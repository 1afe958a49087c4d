package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, player *models.Player) error
	// CreatePlayers inserts the players whose ids are not taken yet and
	// returns how many were added.
	CreatePlayers(ctx context.Context, players []models.Player) (int, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPlayersByRole(ctx context.Context, role string) ([]models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	SearchPlayers(ctx context.Context, query string) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, player *models.Player) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

const playerSearchLimit = 10

type playerService struct {
	tx         repositories.TxRunner
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(tx repositories.TxRunner, playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		tx:         tx,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

// CreatePlayer inserts the player and, when a team is assigned, adds the
// player to that team's roster. Both writes share one transaction so a
// failure never leaves the roster half-updated.
func (s *playerService) CreatePlayer(ctx context.Context, player *models.Player) error {
	return s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.playerRepo.Create(ctx, exec, player); err != nil {
			if errors.Is(err, repositories.ErrPlayerConflict) {
				return ErrPlayerIDTaken
			}
			return fmt.Errorf("failed to create player: %w", err)
		}

		if player.TeamID != 0 {
			return s.addToRoster(ctx, exec, player.TeamID, player.ID)
		}
		return nil
	})
}

func (s *playerService) CreatePlayers(ctx context.Context, players []models.Player) (int, error) {
	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}

	existing, err := s.playerRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to look up existing players: %w", err)
	}

	added := 0
	for i := range players {
		if existing[players[i].ID] {
			continue
		}
		if err := s.playerRepo.Create(ctx, nil, &players[i]); err != nil {
			// Another writer may have claimed the id in the meantime.
			if errors.Is(err, repositories.ErrPlayerConflict) {
				continue
			}
			return added, fmt.Errorf("failed to create player %d: %w", players[i].ID, err)
		}
		added++
	}
	return added, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) ListPlayersByRole(ctx context.Context, role string) ([]models.Player, error) {
	return s.playerRepo.ListByRole(ctx, role)
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	return s.playerRepo.ListByTeam(ctx, teamID)
}

func (s *playerService) SearchPlayers(ctx context.Context, query string) ([]models.Player, error) {
	return s.playerRepo.Search(ctx, query, playerSearchLimit)
}

// UpdatePlayer applies the update and keeps both team rosters consistent
// when the player moves: the old team loses the entry, the new one gains
// it. The player id itself is immutable.
func (s *playerService) UpdatePlayer(ctx context.Context, id int, player *models.Player) (*models.Player, error) {
	current, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	player.ID = current.ID

	err = s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if player.TeamID != current.TeamID {
			if current.TeamID != 0 {
				if err := s.removeFromRoster(ctx, exec, current.TeamID, current.ID); err != nil {
					return err
				}
			}
			if player.TeamID != 0 {
				if err := s.addToRoster(ctx, exec, player.TeamID, player.ID); err != nil {
					return err
				}
			}
		}

		if err := s.playerRepo.Update(ctx, exec, player); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	return s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if player.TeamID != 0 {
			if err := s.removeFromRoster(ctx, exec, player.TeamID, player.ID); err != nil {
				return err
			}
		}

		if err := s.playerRepo.Delete(ctx, exec, id); err != nil {
			return fmt.Errorf("failed to delete player: %w", err)
		}
		return nil
	})
}

// addToRoster appends the player id to the team roster unless it is
// already there. A missing team is not an error here: the original data
// allows dangling team references on players.
func (s *playerService) addToRoster(ctx context.Context, exec repositories.SQLExecutor, teamID, playerID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil
		}
		return err
	}
	if team.OnRoster(playerID) {
		return nil
	}
	roster := append(team.CurrentPlayers, int64(playerID))
	return s.teamRepo.UpdateRoster(ctx, exec, teamID, roster)
}

func (s *playerService) removeFromRoster(ctx context.Context, exec repositories.SQLExecutor, teamID, playerID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil
		}
		return err
	}
	roster := make([]int64, 0, len(team.CurrentPlayers))
	for _, pid := range team.CurrentPlayers {
		if pid != int64(playerID) {
			roster = append(roster, pid)
		}
	}
	if len(roster) == len(team.CurrentPlayers) {
		return nil
	}
	return s.teamRepo.UpdateRoster(ctx, exec, teamID, roster)
}
