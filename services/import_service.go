package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
)

// ImportService seeds teams and players from JSON files on startup.
// Each collection is only imported while its table is still empty.
type ImportService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	logger     *slog.Logger
}

func NewImportService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, logger *slog.Logger) *ImportService {
	return &ImportService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

func (s *ImportService) ImportSeedData(ctx context.Context, dir string) error {
	if err := s.importTeams(ctx, filepath.Join(dir, "teams.json")); err != nil {
		return err
	}
	return s.importPlayers(ctx, filepath.Join(dir, "players.json"))
}

func (s *ImportService) importTeams(ctx context.Context, path string) error {
	count, err := s.teamRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count teams: %w", err)
	}
	if count > 0 {
		s.logger.Info("teams already exist, skipping import")
		return nil
	}

	var data struct {
		Teams []models.Team `json:"teams"`
	}
	if err := readSeedFile(path, &data); err != nil {
		return err
	}

	for i := range data.Teams {
		if err := s.teamRepo.Create(ctx, &data.Teams[i]); err != nil {
			return fmt.Errorf("failed to import team %d: %w", data.Teams[i].ID, err)
		}
	}
	s.logger.Info("teams imported", slog.Int("count", len(data.Teams)))
	return nil
}

func (s *ImportService) importPlayers(ctx context.Context, path string) error {
	count, err := s.playerRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count players: %w", err)
	}
	if count > 0 {
		s.logger.Info("players already exist, skipping import")
		return nil
	}

	var data struct {
		Players []models.Player `json:"players"`
	}
	if err := readSeedFile(path, &data); err != nil {
		return err
	}

	for i := range data.Players {
		if err := s.playerRepo.Create(ctx, nil, &data.Players[i]); err != nil {
			return fmt.Errorf("failed to import player %d: %w", data.Players[i].ID, err)
		}
	}
	s.logger.Info("players imported", slog.Int("count", len(data.Players)))
	return nil
}

func readSeedFile(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return nil
}
