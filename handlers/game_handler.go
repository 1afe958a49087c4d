package handlers

import (
	"net/http"

	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/services"
	"github.com/riftbook/stats-system/validation"
)

type GameHandler struct {
	gameService  services.GameService
	statsService services.StatsService
}

func NewGameHandler(gameService services.GameService, statsService services.StatsService) *GameHandler {
	return &GameHandler{
		gameService:  gameService,
		statsService: statsService,
	}
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var game models.Game
	if err := readJSON(w, r, &game); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validation.ValidateGame(&game); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.CreateGame(r.Context(), userID, &game); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": msgGameCreated, "game": game}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetUserGames(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	games, err := h.gameService.ListUserGames(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGameByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var game models.Game
	if err := readJSON(w, r, &game); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validation.ValidateGame(&game); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.gameService.UpdateGame(r.Context(), gameID, userID, &game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": msgGameUpdated, "game": updated}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), gameID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": msgGameDeleted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetGameStats aggregates the caller's games into dashboard numbers.
func (h *GameHandler) GetGameStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
