package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
	"github.com/rocketscienceinc/wordgame-backend/internal/gameplay"
	"github.com/rocketscienceinc/wordgame-backend/internal/service"
)

type gamePlayService interface {
	PlayTurn(ctx context.Context, gameID int64, playerID string, raw []entity.RawPlacement) (*gameplay.TurnResult, error)
}

type gameService interface {
	CreateGame(ctx context.Context, request service.NewGameRequest) (*entity.Game, error)
	GetGameState(ctx context.Context, gameID int64, playerID string) (*service.GameState, error)
	MoveHistory(ctx context.Context, gameID int64, playerID string) ([]service.PlayerMoves, error)
}

type GameHandler struct {
	plays gamePlayService
	games gameService

	retryAfter time.Duration
	catalog    service.Catalog
}

// NewGameHandler serves the game routes. retryAfter is the lock expiry advertised when a game is busy;
// catalog supplies the layout and dictionary of games created without explicit ones.
func NewGameHandler(plays gamePlayService, games gameService, retryAfter time.Duration, catalog service.Catalog) *GameHandler {
	return &GameHandler{
		plays:      plays,
		games:      games,
		retryAfter: retryAfter,
		catalog:    catalog,
	}
}

func (that *GameHandler) PlayTurn(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	var raw []entity.RawPlacement
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, apperror.PlayMessage(apperror.ErrPlaySchema))
		return
	}

	result, err := that.plays.PlayTurn(r.Context(), gameID, PlayerID(r.Context()), raw)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newPlayResponse(result))
	case apperror.IsPlayError(err):
		writeError(w, apperror.PlayStatus(err), apperror.PlayMessage(err))
	case errors.Is(err, apperror.ErrLockAcquisition):
		seconds := int(that.retryAfter.Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Server error. Encountered a lock on this game. Please try again after at least %d seconds.", seconds))
	case errors.Is(err, apperror.ErrGameNotFound):
		writeError(w, http.StatusBadRequest, "Game does not exist.")
	case errors.Is(err, apperror.ErrConcurrentTurn):
		writeError(w, http.StatusConflict, "The game changed while the turn was played. Please try again.")
	default:
		internalError(w, r, err)
	}
}

func (that *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	state, err := that.games.GetGameState(r.Context(), gameID, PlayerID(r.Context()))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newGameView(state))
	case errors.Is(err, apperror.ErrGameNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Game with id %d not found.", gameID))
	case errors.Is(err, apperror.ErrNotParticipant):
		writeError(w, http.StatusUnauthorized, "User is not authorized to access this game.")
	default:
		internalError(w, r, err)
	}
}

func (that *GameHandler) MoveHistory(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	history, err := that.games.MoveHistory(r.Context(), gameID, PlayerID(r.Context()))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newMoveHistoryView(history))
	case errors.Is(err, apperror.ErrGameNotFound):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("No game with ID %d.", gameID))
	case errors.Is(err, apperror.ErrNotParticipant):
		writeError(w, http.StatusUnauthorized, "User is not authorized.")
	default:
		internalError(w, r, err)
	}
}

type newGameRequest struct {
	DisplayName   string          `json:"display_name"`
	Opponents     []opponentInput `json:"opponents"`
	BoardLayoutID int64           `json:"board_layout_id"`
	DictionaryID  int64           `json:"dictionary_id"`
}

type opponentInput struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

func (that *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var body newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "New game data does not conform to the schema.")
		return
	}

	request := service.NewGameRequest{
		Creator:      entity.GamePlayer{PlayerID: PlayerID(r.Context()), DisplayName: body.DisplayName},
		LayoutID:     that.catalog.LayoutID,
		DictionaryID: that.catalog.DictionaryID,
	}
	if body.BoardLayoutID != 0 {
		request.LayoutID = body.BoardLayoutID
	}
	if body.DictionaryID != 0 {
		request.DictionaryID = body.DictionaryID
	}

	for _, opponent := range body.Opponents {
		if opponent.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "New game data does not conform to the schema.")
			return
		}
		request.Opponents = append(request.Opponents, entity.GamePlayer{PlayerID: opponent.PlayerID, DisplayName: opponent.DisplayName})
	}

	game, err := that.games.CreateGame(r.Context(), request)
	if err != nil {
		if message, ok := apperror.NewGameMessage(err); ok {
			writeError(w, http.StatusBadRequest, message)
			return
		}

		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"game_id": game.ID})
}

func gameIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game id.")
		return 0, false
	}

	return gameID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
