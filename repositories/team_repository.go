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
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamConflict = errors.New("team id conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	Delete(ctx context.Context, id int) error
	// UpdateRoster replaces only the current_players array; used by the
	// transactional roster bookkeeping in the service layer.
	UpdateRoster(ctx context.Context, exec SQLExecutor, teamID int, roster []int64) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Count(ctx context.Context) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	history, err := json.Marshal(team.PlayerHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal team player history: %w", err)
	}

	query := `
		INSERT INTO teams (id, name, ingame_name, found_date, current_players, player_history)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		team.ID,
		team.Name,
		team.IngameName,
		team.FoundDate,
		pq.Array(team.CurrentPlayers),
		history,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTeamConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := selectTeam + ` WHERE id = $1`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, selectTeam+` ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	history, err := json.Marshal(team.PlayerHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal team player history: %w", err)
	}

	query := `
		UPDATE teams SET
			name = $1,
			ingame_name = $2,
			found_date = $3,
			current_players = $4,
			player_history = $5
		WHERE id = $6`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		team.Name,
		team.IngameName,
		team.FoundDate,
		pq.Array(team.CurrentPlayers),
		history,
		team.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateRoster(ctx context.Context, exec SQLExecutor, teamID int, roster []int64) error {
	query := `UPDATE teams SET current_players = $1 WHERE id = $2`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, pq.Array(roster), teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const selectTeam = `SELECT id, name, ingame_name, found_date, current_players, player_history, logo_key FROM teams`

func scanTeam(row rowScanner) (*models.Team, error) {
	var team models.Team
	var history []byte

	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.IngameName,
		&team.FoundDate,
		pq.Array(&team.CurrentPlayers),
		&history,
		&team.LogoKey,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &team.PlayerHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team player history: %w", err)
	}
	return &team, nil
}
