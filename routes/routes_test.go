package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/riftbook/stats-system/handlers"
	"github.com/riftbook/stats-system/middleware"
	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type stubPlayerService struct{}

func (stubPlayerService) CreatePlayer(context.Context, *models.Player) error { return nil }
func (stubPlayerService) CreatePlayers(context.Context, []models.Player) (int, error) {
	return 0, nil
}
func (stubPlayerService) GetPlayerByID(context.Context, int) (*models.Player, error) {
	return nil, services.ErrPlayerNotFound
}
func (stubPlayerService) ListPlayers(context.Context) ([]models.Player, error) {
	return []models.Player{}, nil
}
func (stubPlayerService) ListPlayersByRole(context.Context, string) ([]models.Player, error) {
	return []models.Player{}, nil
}
func (stubPlayerService) ListPlayersByTeam(context.Context, int) ([]models.Player, error) {
	return []models.Player{}, nil
}
func (stubPlayerService) SearchPlayers(context.Context, string) ([]models.Player, error) {
	return []models.Player{}, nil
}
func (stubPlayerService) UpdatePlayer(context.Context, int, *models.Player) (*models.Player, error) {
	return nil, services.ErrPlayerNotFound
}
func (stubPlayerService) DeletePlayer(context.Context, int) error { return nil }

type stubTeamService struct{}

func (stubTeamService) CreateTeam(context.Context, *models.Team) error { return nil }
func (stubTeamService) GetTeamByID(context.Context, int) (*models.Team, error) {
	return nil, services.ErrTeamNotFound
}
func (stubTeamService) ListTeams(context.Context) ([]models.Team, error) {
	return []models.Team{}, nil
}
func (stubTeamService) UpdateTeam(context.Context, int, *models.Team) (*models.Team, error) {
	return nil, services.ErrTeamNotFound
}
func (stubTeamService) DeleteTeam(context.Context, int) error { return nil }
func (stubTeamService) AddPlayerToTeam(context.Context, int, int) (*models.Team, error) {
	return nil, services.ErrTeamNotFound
}
func (stubTeamService) RemovePlayerFromTeam(context.Context, int, int) (*models.Team, error) {
	return nil, services.ErrTeamNotFound
}
func (stubTeamService) UploadLogo(context.Context, int, string, io.Reader) (*models.Team, error) {
	return nil, services.ErrLogoStorageUnavailable
}

func testRouter() *chi.Mux {
	auth := middleware.NewAuthenticator(testSecret)
	router := chi.NewRouter()
	SetupRoutes(
		router,
		"",
		auth,
		handlers.NewAuthHandler(nil, testSecret),
		handlers.NewPlayerHandler(stubPlayerService{}),
		handlers.NewTeamHandler(stubTeamService{}),
		handlers.NewGameHandler(nil, nil),
		handlers.NewLiveHandler(nil),
		false,
	)
	return router
}

func testToken(t *testing.T) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"exp":     now.Add(time.Hour).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestPlayerAndTeamReadsRequireToken(t *testing.T) {
	router := testRouter()

	paths := []string{
		"/api/players",
		"/api/players/search/faker",
		"/api/players/role/Mid",
		"/api/players/team/1",
		"/api/players/3",
		"/api/teams",
		"/api/teams/1",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.NotContains(t, rec.Body.String(), "players")
			assert.NotContains(t, rec.Body.String(), "teams")
		})
	}
}

func TestPlayerAndTeamReadsServedWithToken(t *testing.T) {
	router := testRouter()
	token := testToken(t)

	for _, path := range []string{"/api/players", "/api/teams"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthRoutesStayPublic(t *testing.T) {
	router := testRouter()

	// Reaching body validation (400) proves no token gate is in front.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
