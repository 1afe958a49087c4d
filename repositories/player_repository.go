package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/riftbook/stats-system/models"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerConflict = errors.New("player id conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByRole(ctx context.Context, role string) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	Search(ctx context.Context, query string, limit int) ([]models.Player, error)
	ExistingIDs(ctx context.Context, ids []int) (map[int]bool, error)
	Update(ctx context.Context, exec SQLExecutor, player *models.Player) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	history, err := json.Marshal(player.History)
	if err != nil {
		return fmt.Errorf("failed to marshal player history: %w", err)
	}

	query := `
		INSERT INTO players (id, name, ingame_name, role, birthday, team_id, history)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.getExecutor(exec).ExecContext(ctx, query,
		player.ID,
		player.Name,
		player.IngameName,
		player.Role,
		player.Birthday,
		player.TeamID,
		history,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPlayerConflict
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := selectPlayer + ` WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	return r.listPlayers(ctx, selectPlayer+` ORDER BY id ASC`)
}

func (r *postgresPlayerRepository) ListByRole(ctx context.Context, role string) ([]models.Player, error) {
	return r.listPlayers(ctx, selectPlayer+` WHERE role ILIKE $1 ORDER BY id ASC`, "%"+role+"%")
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	return r.listPlayers(ctx, selectPlayer+` WHERE team_id = $1 ORDER BY role ASC`, teamID)
}

func (r *postgresPlayerRepository) Search(ctx context.Context, query string, limit int) ([]models.Player, error) {
	q := selectPlayer + ` WHERE name ILIKE $1 OR ingame_name ILIKE $1 ORDER BY id ASC LIMIT $2`
	return r.listPlayers(ctx, q, "%"+query+"%", limit)
}

func (r *postgresPlayerRepository) ExistingIDs(ctx context.Context, ids []int) (map[int]bool, error) {
	query := `SELECT id FROM players WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[int]bool, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	history, err := json.Marshal(player.History)
	if err != nil {
		return fmt.Errorf("failed to marshal player history: %w", err)
	}

	query := `
		UPDATE players SET
			name = $1,
			ingame_name = $2,
			role = $3,
			birthday = $4,
			team_id = $5,
			history = $6
		WHERE id = $7`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		player.Name,
		player.IngameName,
		player.Role,
		player.Birthday,
		player.TeamID,
		history,
		player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const selectPlayer = `SELECT id, name, ingame_name, role, birthday, team_id, history FROM players`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var player models.Player
	var history []byte

	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.IngameName,
		&player.Role,
		&player.Birthday,
		&player.TeamID,
		&history,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &player.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player history: %w", err)
	}
	return &player, nil
}

func (r *postgresPlayerRepository) listPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}
