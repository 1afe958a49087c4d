package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/riftbook/stats-system/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	// Create assigns the next sequential game id from the database.
	Create(ctx context.Context, game *models.Game) error
	GetByGameID(ctx context.Context, gameID int) (*models.Game, error)
	ListByUser(ctx context.Context, userID int) ([]models.Game, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, gameID int) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	teams, err := json.Marshal(game.Teams)
	if err != nil {
		return fmt.Errorf("failed to marshal game teams: %w", err)
	}

	// game_id comes from a sequence, so concurrent creates never collide.
	query := `
		INSERT INTO games (date, duration, patch, teams, mvp_player_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING game_id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		game.Date,
		game.Duration,
		game.Patch,
		teams,
		game.MVPPlayerID,
		game.UserID,
	).Scan(&game.GameID, &game.CreatedAt, &game.UpdatedAt)
}

func (r *postgresGameRepository) GetByGameID(ctx context.Context, gameID int) (*models.Game, error) {
	query := selectGame + ` WHERE game_id = $1`

	game, err := scanGame(r.db.QueryRowContext(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) ListByUser(ctx context.Context, userID int) ([]models.Game, error) {
	query := selectGame + ` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	teams, err := json.Marshal(game.Teams)
	if err != nil {
		return fmt.Errorf("failed to marshal game teams: %w", err)
	}

	query := `
		UPDATE games SET
			date = $1,
			duration = $2,
			patch = $3,
			teams = $4,
			mvp_player_id = $5,
			updated_at = NOW()
		WHERE game_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		game.Date,
		game.Duration,
		game.Patch,
		teams,
		game.MVPPlayerID,
		game.GameID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, gameID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

const selectGame = `SELECT game_id, date, duration, patch, teams, mvp_player_id, user_id, created_at, updated_at FROM games`

func scanGame(row rowScanner) (*models.Game, error) {
	var game models.Game
	var teams []byte

	err := row.Scan(
		&game.GameID,
		&game.Date,
		&game.Duration,
		&game.Patch,
		&teams,
		&game.MVPPlayerID,
		&game.UserID,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(teams, &game.Teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game teams: %w", err)
	}
	return &game, nil
}
