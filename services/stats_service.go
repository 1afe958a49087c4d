package services

import (
	"context"
	"sort"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/repositories"
	"golang.org/x/sync/errgroup"
)

const topPlayerLimit = 5

type StatsService interface {
	// GetStats aggregates the caller's games: total count, per-team win
	// rates sorted descending and the top five players by KDA.
	GetStats(ctx context.Context, userID int) (*models.GameStats, error)
}

type statsService struct {
	gameRepo repositories.GameRepository
}

func NewStatsService(gameRepo repositories.GameRepository) StatsService {
	return &statsService{gameRepo: gameRepo}
}

func (s *statsService) GetStats(ctx context.Context, userID int) (*models.GameStats, error) {
	var (
		totalGames int
		games      []models.Game
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalGames, err = s.gameRepo.CountByUser(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		games, err = s.gameRepo.ListByUser(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.GameStats{
		TotalGames: totalGames,
		TeamStats:  computeTeamWinRates(games),
		TopPlayers: computeTopPlayersByKDA(games, topPlayerLimit),
	}, nil
}

// computeTeamWinRates groups the games by team id and derives each team's
// win rate as wins/games*100, sorted descending. Teams with equal win
// rates keep their first-appearance order.
func computeTeamWinRates(games []models.Game) []models.TeamWinRate {
	byTeam := make(map[int]*models.TeamWinRate)
	order := make([]int, 0)

	for _, game := range games {
		for _, team := range game.Teams {
			stat, ok := byTeam[team.TeamID]
			if !ok {
				stat = &models.TeamWinRate{TeamID: team.TeamID, TeamName: team.TeamName}
				byTeam[team.TeamID] = stat
				order = append(order, team.TeamID)
			}
			stat.TotalGames++
			if team.Result == models.ResultWin {
				stat.Wins++
			}
		}
	}

	stats := make([]models.TeamWinRate, 0, len(order))
	for _, teamID := range order {
		stat := byTeam[teamID]
		stat.WinRate = float64(stat.Wins) / float64(stat.TotalGames) * 100
		stats = append(stats, *stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].WinRate > stats[j].WinRate
	})
	return stats
}

// computeTopPlayersByKDA sums each player's kills, deaths and assists
// across all games and ranks them by KDA. A player with zero deaths gets
// their raw kill total as KDA instead of dividing by zero.
func computeTopPlayersByKDA(games []models.Game, limit int) []models.PlayerKDA {
	type totals struct {
		kills, deaths, assists int
	}

	byPlayer := make(map[int]*models.PlayerKDA)
	sums := make(map[int]*totals)
	order := make([]int, 0)

	for _, game := range games {
		for _, team := range game.Teams {
			for _, player := range team.Players {
				stat, ok := byPlayer[player.PlayerID]
				if !ok {
					stat = &models.PlayerKDA{PlayerID: player.PlayerID, PlayerName: player.PlayerName}
					byPlayer[player.PlayerID] = stat
					sums[player.PlayerID] = &totals{}
					order = append(order, player.PlayerID)
				}
				stat.TotalGames++
				sum := sums[player.PlayerID]
				sum.kills += player.Kills
				sum.deaths += player.Deaths
				sum.assists += player.Assists
			}
		}
	}

	stats := make([]models.PlayerKDA, 0, len(order))
	for _, playerID := range order {
		stat := byPlayer[playerID]
		sum := sums[playerID]
		games := float64(stat.TotalGames)
		stat.AvgKills = float64(sum.kills) / games
		stat.AvgDeaths = float64(sum.deaths) / games
		stat.AvgAssists = float64(sum.assists) / games
		if sum.deaths == 0 {
			stat.KDA = float64(sum.kills)
		} else {
			stat.KDA = float64(sum.kills+sum.assists) / float64(sum.deaths)
		}
		stats = append(stats, *stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].KDA > stats[j].KDA
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
