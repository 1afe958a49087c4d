package services

import (
	"context"
	"strings"
	"testing"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTxRunner runs the function directly so fake repositories,
// which ignore the executor, see every write immediately.
type passthroughTxRunner struct{}

func (passthroughTxRunner) InTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakePlayerRepo struct {
	players map[int]models.Player
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[int]models.Player)}
	for _, player := range players {
		repo.players[player.ID] = player
	}
	return repo
}

func (f *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	if _, ok := f.players[player.ID]; ok {
		return repositories.ErrPlayerConflict
	}
	f.players[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0, len(f.players))
	for _, player := range f.players {
		players = append(players, player)
	}
	return players, nil
}

func (f *fakePlayerRepo) ListByRole(_ context.Context, role string) ([]models.Player, error) {
	var players []models.Player
	for _, player := range f.players {
		if player.Role == role {
			players = append(players, player)
		}
	}
	return players, nil
}

func (f *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	var players []models.Player
	for _, player := range f.players {
		if player.TeamID == teamID {
			players = append(players, player)
		}
	}
	return players, nil
}

func (f *fakePlayerRepo) Search(_ context.Context, query string, limit int) ([]models.Player, error) {
	var players []models.Player
	for _, player := range f.players {
		if len(players) == limit {
			break
		}
		if strings.Contains(strings.ToLower(player.Name), strings.ToLower(query)) {
			players = append(players, player)
		}
	}
	return players, nil
}

func (f *fakePlayerRepo) ExistingIDs(_ context.Context, ids []int) (map[int]bool, error) {
	existing := make(map[int]bool)
	for _, id := range ids {
		if _, ok := f.players[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	if _, ok := f.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	f.players[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := f.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) Count(_ context.Context) (int, error) {
	return len(f.players), nil
}

func newPlayerServiceForTest(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return NewPlayerService(passthroughTxRunner{}, playerRepo, teamRepo)
}

func TestCreatePlayerAddsToRoster(t *testing.T) {
	teams := newFakeTeamRepo(models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{7}})
	svc := newPlayerServiceForTest(newFakePlayerRepo(), teams)

	err := svc.CreatePlayer(context.Background(), &models.Player{ID: 3, Name: "Faker", TeamID: 1})
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 3}, team.CurrentPlayers)
}

func TestCreatePlayerWithoutTeamLeavesRostersAlone(t *testing.T) {
	teams := newFakeTeamRepo(models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{7}})
	svc := newPlayerServiceForTest(newFakePlayerRepo(), teams)

	err := svc.CreatePlayer(context.Background(), &models.Player{ID: 3, Name: "Faker"})
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, team.CurrentPlayers)
}

func TestCreatePlayerConflictMapsToIDTaken(t *testing.T) {
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker"})
	svc := newPlayerServiceForTest(players, newFakeTeamRepo())

	err := svc.CreatePlayer(context.Background(), &models.Player{ID: 3, Name: "Someone"})
	assert.ErrorIs(t, err, ErrPlayerIDTaken)
}

func TestCreatePlayerToleratesMissingTeam(t *testing.T) {
	players := newFakePlayerRepo()
	svc := newPlayerServiceForTest(players, newFakeTeamRepo())

	err := svc.CreatePlayer(context.Background(), &models.Player{ID: 3, Name: "Faker", TeamID: 99})
	require.NoError(t, err)

	stored, err := players.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 99, stored.TeamID)
}

func TestUpdatePlayerMovesBetweenRosters(t *testing.T) {
	teams := newFakeTeamRepo(
		models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{3, 7}},
		models.Team{ID: 2, Name: "GenG", CurrentPlayers: []int64{5}},
	)
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker", TeamID: 1})
	svc := newPlayerServiceForTest(players, teams)

	updated, err := svc.UpdatePlayer(context.Background(), 3, &models.Player{Name: "Faker", TeamID: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)

	old, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, old.CurrentPlayers)

	next, err := teams.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3}, next.CurrentPlayers)
}

func TestUpdatePlayerSameTeamLeavesRosterUnchanged(t *testing.T) {
	teams := newFakeTeamRepo(models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{3, 7}})
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker", TeamID: 1})
	svc := newPlayerServiceForTest(players, teams)

	_, err := svc.UpdatePlayer(context.Background(), 3, &models.Player{Name: "Faker", Role: "Mid", TeamID: 1})
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, team.CurrentPlayers)

	stored, err := players.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Mid", stored.Role)
}

func TestUpdatePlayerToNoTeamRemovesFromRoster(t *testing.T) {
	teams := newFakeTeamRepo(models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{3, 7}})
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker", TeamID: 1})
	svc := newPlayerServiceForTest(players, teams)

	_, err := svc.UpdatePlayer(context.Background(), 3, &models.Player{Name: "Faker"})
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, team.CurrentPlayers)
}

func TestUpdatePlayerKeepsIDImmutable(t *testing.T) {
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker"})
	svc := newPlayerServiceForTest(players, newFakeTeamRepo())

	updated, err := svc.UpdatePlayer(context.Background(), 3, &models.Player{ID: 42, Name: "Faker"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)

	_, err = players.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, repositories.ErrPlayerNotFound)
}

func TestUpdateUnknownPlayer(t *testing.T) {
	svc := newPlayerServiceForTest(newFakePlayerRepo(), newFakeTeamRepo())

	_, err := svc.UpdatePlayer(context.Background(), 9, &models.Player{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeletePlayerRemovesFromRoster(t *testing.T) {
	teams := newFakeTeamRepo(models.Team{ID: 1, Name: "T1", CurrentPlayers: []int64{3, 7}})
	players := newFakePlayerRepo(models.Player{ID: 3, Name: "Faker", TeamID: 1})
	svc := newPlayerServiceForTest(players, teams)

	err := svc.DeletePlayer(context.Background(), 3)
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, team.CurrentPlayers)

	_, err = players.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, repositories.ErrPlayerNotFound)
}

func TestDeleteUnknownPlayer(t *testing.T) {
	svc := newPlayerServiceForTest(newFakePlayerRepo(), newFakeTeamRepo())

	err := svc.DeletePlayer(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestCreatePlayersSkipsExistingIDs(t *testing.T) {
	players := newFakePlayerRepo(models.Player{ID: 1, Name: "Zeus"})
	svc := newPlayerServiceForTest(players, newFakeTeamRepo())

	added, err := svc.CreatePlayers(context.Background(), []models.Player{
		{ID: 1, Name: "Zeus"},
		{ID: 2, Name: "Oner"},
		{ID: 3, Name: "Faker"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	count, err := players.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
