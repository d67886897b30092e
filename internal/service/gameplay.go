package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
	"github.com/rocketscienceinc/wordgame-backend/internal/gameplay"
	"github.com/rocketscienceinc/wordgame-backend/internal/lock"
	"github.com/rocketscienceinc/wordgame-backend/internal/notify"
)

type GamePlayService interface {
	PlayTurn(ctx context.Context, gameID int64, playerID string, raw []entity.RawPlacement) (*gameplay.TurnResult, error)
}

type turnStore interface {
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	CommitTurn(ctx context.Context, game *entity.Game, move *entity.Move) error
}

type dictionary interface {
	IsWord(ctx context.Context, dictionaryID int64, word string) (bool, error)
}

type gamePlayService struct {
	logger zerolog.Logger

	locker     lock.Locker
	lockOpts   lock.Options
	games      turnStore
	dictionary dictionary
	notifier   notify.Notifier

	rnd entity.Random
	now func() time.Time
}

func NewGamePlayService(
	logger zerolog.Logger,
	locker lock.Locker,
	lockOpts lock.Options,
	games turnStore,
	dictionary dictionary,
	notifier notify.Notifier,
) GamePlayService {
	return &gamePlayService{
		logger:     logger.With().Str("component", "gameplay").Logger(),
		locker:     locker,
		lockOpts:   lockOpts,
		games:      games,
		dictionary: dictionary,
		notifier:   notifier,
		rnd:        entity.DefaultRandom,
		now:        time.Now,
	}
}

// GameLockKey names the lock that serialises turns of one game.
func GameLockKey(gameID int64) string {
	return fmt.Sprintf("game:%d", gameID)
}

// PlayTurn validates, scores and commits one turn while holding the game lock.
// Nothing is written unless every check passes.
func (that *gamePlayService) PlayTurn(ctx context.Context, gameID int64, playerID string, raw []entity.RawPlacement) (*gameplay.TurnResult, error) {
	var result *gameplay.TurnResult

	err := lock.WithLock(ctx, that.logger, that.locker, GameLockKey(gameID), that.lockOpts, func(ctx context.Context) error {
		submission, err := gameplay.ValidateRequest(raw)
		if err != nil {
			return err
		}

		game, err := that.games.GetByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		if err = gameplay.ValidateState(game, playerID, submission); err != nil {
			return err
		}

		resolution := gameplay.ResolveWords(game.Grid(), submission)
		if err = that.checkWords(ctx, game.DictionaryID, resolution.Words()); err != nil {
			return err
		}

		result, err = gameplay.ApplyTurn(game, submission, resolution, that.rnd, that.now().UTC())
		if err != nil {
			return fmt.Errorf("failed to apply turn: %w", err)
		}

		if err = that.games.CommitTurn(ctx, result.Game, result.Move); err != nil {
			return fmt.Errorf("failed to commit turn: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	that.logger.Info().
		Int64("game_id", gameID).
		Str("player_id", playerID).
		Str("kind", string(result.Kind)).
		Int("score", result.Move.Score).
		Bool("completed", result.Completed).
		Msg("turn committed")

	if !result.Completed {
		if err = that.notifier.NotifyNextPlayer(ctx, result.Game); err != nil {
			that.logger.Warn().Err(err).Int64("game_id", gameID).Msg("failed to notify next player")
		}
	}

	return result, nil
}

func (that *gamePlayService) checkWords(ctx context.Context, dictionaryID int64, words []string) error {
	for _, word := range words {
		found, err := that.dictionary.IsWord(ctx, dictionaryID, word)
		if err != nil {
			return fmt.Errorf("failed to check word %q: %w", word, err)
		}

		if !found {
			return fmt.Errorf("%w: %s", apperror.ErrPlayDictionary, word)
		}
	}

	return nil
}
