package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
)

// GameEventPublisher pushes game lifecycle events to the owner's
// connected live clients. A nil publisher disables the feed.
type GameEventPublisher interface {
	PublishGameEvent(userID int, eventType string, game *models.Game)
}

const (
	EventGameCreated = "GAME_CREATED"
	EventGameUpdated = "GAME_UPDATED"
	EventGameDeleted = "GAME_DELETED"
)

type GameService interface {
	CreateGame(ctx context.Context, userID int, game *models.Game) error
	ListUserGames(ctx context.Context, userID int) ([]models.Game, error)
	GetGame(ctx context.Context, gameID, userID int) (*models.Game, error)
	UpdateGame(ctx context.Context, gameID, userID int, game *models.Game) (*models.Game, error)
	DeleteGame(ctx context.Context, gameID, userID int) error
}

type gameService struct {
	gameRepo  repositories.GameRepository
	publisher GameEventPublisher
}

func NewGameService(gameRepo repositories.GameRepository, publisher GameEventPublisher) GameService {
	return &gameService{
		gameRepo:  gameRepo,
		publisher: publisher,
	}
}

func (s *gameService) CreateGame(ctx context.Context, userID int, game *models.Game) error {
	game.UserID = userID
	if game.Date.IsZero() {
		game.Date = time.Now()
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	s.publish(userID, EventGameCreated, game)
	return nil
}

func (s *gameService) ListUserGames(ctx context.Context, userID int) ([]models.Game, error) {
	return s.gameRepo.ListByUser(ctx, userID)
}

// GetGame returns the game only to its owner. Existence is checked first,
// so a foreign caller gets 403 rather than the game data, and an unknown
// id gets 404 regardless of the caller.
func (s *gameService) GetGame(ctx context.Context, gameID, userID int) (*models.Game, error) {
	game, err := s.gameRepo.GetByGameID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.UserID != userID {
		return nil, ErrGameAccessForbidden
	}
	return game, nil
}

func (s *gameService) UpdateGame(ctx context.Context, gameID, userID int, game *models.Game) (*models.Game, error) {
	current, err := s.GetGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}

	game.GameID = current.GameID
	game.UserID = current.UserID
	if game.Date.IsZero() {
		game.Date = current.Date
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	s.publish(userID, EventGameUpdated, game)
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, gameID, userID int) error {
	game, err := s.GetGame(ctx, gameID, userID)
	if err != nil {
		return err
	}

	if err := s.gameRepo.Delete(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	s.publish(userID, EventGameDeleted, game)
	return nil
}

func (s *gameService) publish(userID int, eventType string, game *models.Game) {
	if s.publisher != nil {
		s.publisher.PublishGameEvent(userID, eventType, game)
	}
}
