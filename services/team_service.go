package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
	"github.com/riftbook/stats-system/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, team *models.Team) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddPlayerToTeam(ctx context.Context, teamID, playerID int) (*models.Team, error)
	// RemovePlayerFromTeam is a no-op when the player is not on the roster.
	RemovePlayerFromTeam(ctx context.Context, teamID, playerID int) (*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, logo io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader // nil when object storage is not configured
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, team *models.Team) error {
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamConflict) {
			return ErrTeamIDTaken
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.fillLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, team *models.Team) (*models.Team, error) {
	team.ID = id
	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	// Logo cleanup is best effort; an orphaned object is harmless.
	if s.uploader != nil && team.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) AddPlayerToTeam(ctx context.Context, teamID, playerID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if team.OnRoster(playerID) {
		return nil, ErrPlayerAlreadyRostered
	}

	team.CurrentPlayers = append(team.CurrentPlayers, int64(playerID))
	if err := s.teamRepo.UpdateRoster(ctx, nil, teamID, team.CurrentPlayers); err != nil {
		return nil, fmt.Errorf("failed to update roster: %w", err)
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) RemovePlayerFromTeam(ctx context.Context, teamID, playerID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	roster := make([]int64, 0, len(team.CurrentPlayers))
	for _, pid := range team.CurrentPlayers {
		if pid != int64(playerID) {
			roster = append(roster, pid)
		}
	}
	if len(roster) == len(team.CurrentPlayers) {
		s.fillLogoURL(team)
		return team, nil
	}

	team.CurrentPlayers = roster
	if err := s.teamRepo.UpdateRoster(ctx, nil, teamID, roster); err != nil {
		return nil, fmt.Errorf("failed to update roster: %w", err)
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, logo io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, logo)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}

	team.LogoKey = &result.Key
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}
