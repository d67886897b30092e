package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
	"github.com/rocketscienceinc/wordgame-backend/internal/gameplay"
	"github.com/rocketscienceinc/wordgame-backend/internal/notify"
	"github.com/rocketscienceinc/wordgame-backend/internal/repository"
)

type GameService interface {
	CreateGame(ctx context.Context, request NewGameRequest) (*entity.Game, error)

	GetGameState(ctx context.Context, gameID int64, playerID string) (*GameState, error)
	MoveHistory(ctx context.Context, gameID int64, playerID string) ([]PlayerMoves, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
}

type moveRepo interface {
	ListByGame(ctx context.Context, gameID int64) ([]entity.Move, error)
	LastByGame(ctx context.Context, gameID int64) (*entity.Move, error)
}

type layoutRepo interface {
	GetByID(ctx context.Context, id int64) (*entity.BoardLayout, error)
}

type NewGameRequest struct {
	Creator      entity.GamePlayer
	Opponents    []entity.GamePlayer
	LayoutID     int64
	DictionaryID int64
}

// GameState is one player's view of a game: their own rack, everyone else's rack size only.
type GameState struct {
	Game      *entity.Game
	Viewer    *entity.GamePlayer
	Rack      []entity.TileCount
	BagCount  int
	WhoseTurn *entity.GamePlayer
	PrevMove  *PrevMove
}

type PrevMove struct {
	Move          entity.Move
	Player        entity.GamePlayer
	ExchangeCount int
}

// PlayerMoves groups the move history of one game player.
type PlayerMoves struct {
	Player entity.GamePlayer
	Moves  []entity.Move
}

type gameService struct {
	logger zerolog.Logger

	gameRepo   gameRepo
	moveRepo   moveRepo
	layoutRepo layoutRepo
	notifier   notify.Notifier

	rnd entity.Random
	now func() time.Time
}

func NewGameService(logger zerolog.Logger, gameRepo gameRepo, moveRepo moveRepo, layoutRepo layoutRepo, notifier notify.Notifier) GameService {
	return &gameService{
		logger:     logger.With().Str("component", "game").Logger(),
		gameRepo:   gameRepo,
		moveRepo:   moveRepo,
		layoutRepo: layoutRepo,
		notifier:   notifier,
		rnd:        entity.DefaultRandom,
		now:        time.Now,
	}
}

func (that *gameService) CreateGame(ctx context.Context, request NewGameRequest) (*entity.Game, error) {
	layout, err := that.layoutRepo.GetByID(ctx, request.LayoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board layout: %w", err)
	}

	game, err := gameplay.SetupGame(gameplay.NewGameParams{
		Creator:      request.Creator,
		Opponents:    request.Opponents,
		Layout:       *layout,
		DictionaryID: request.DictionaryID,
		Distribution: entity.StandardDistribution(),
	}, that.rnd, that.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info().Int64("game_id", game.ID).Str("creator", request.Creator.PlayerID).Int("players", len(game.Players)).Msg("game created")

	if err = that.notifier.NotifyNewGame(ctx, game, request.Creator.PlayerID); err != nil {
		that.logger.Warn().Err(err).Int64("game_id", game.ID).Msg("failed to notify new game")
	}

	return game, nil
}

func (that *gameService) GetGameState(ctx context.Context, gameID int64, playerID string) (*GameState, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	viewer, ok := game.PlayerByID(playerID)
	if !ok {
		return nil, apperror.ErrNotParticipant
	}

	sort.Slice(game.Players, func(i, j int) bool {
		return game.Players[i].TurnOrder < game.Players[j].TurnOrder
	})
	viewer, _ = game.PlayerByID(playerID)

	state := &GameState{
		Game:     game,
		Viewer:   viewer,
		Rack:     viewer.Rack.Counts(),
		BagCount: game.Bag.TotalCount(),
	}

	if !game.IsCompleted() {
		state.WhoseTurn, _ = game.CurrentPlayer()
	}

	if state.PrevMove, err = that.prevMove(ctx, game); err != nil {
		return nil, err
	}

	return state, nil
}

func (that *gameService) prevMove(ctx context.Context, game *entity.Game) (*PrevMove, error) {
	move, err := that.moveRepo.LastByGame(ctx, game.ID)
	if errors.Is(err, repository.ErrNoMoves) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get previous move: %w", err)
	}

	prev := &PrevMove{Move: *move, ExchangeCount: move.ExchangedTiles.TotalCount()}
	for _, player := range game.Players {
		if player.ID == move.GamePlayerID {
			prev.Player = player
		}
	}

	return prev, nil
}

func (that *gameService) MoveHistory(ctx context.Context, gameID int64, playerID string) ([]PlayerMoves, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if _, ok := game.PlayerByID(playerID); !ok {
		return nil, apperror.ErrNotParticipant
	}

	moves, err := that.moveRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	history := make([]PlayerMoves, 0, len(game.Players))
	index := make(map[int64]int, len(game.Players))
	for _, player := range game.Players {
		index[player.ID] = len(history)
		history = append(history, PlayerMoves{Player: player, Moves: []entity.Move{}})
	}

	for _, move := range moves {
		if i, ok := index[move.GamePlayerID]; ok {
			history[i].Moves = append(history[i].Moves, move)
		}
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Player.TurnOrder < history[j].Player.TurnOrder
	})

	return history, nil
}
