package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

const (
	EventNextTurn = "next_turn"
	EventNewGame  = "new_game"
)

const (
	nextTurnMessage = "It is your turn to play next!"
	newGameMessage  = "You have been invited to a new game."
)

// Event is one message for one player.
type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	GameID   int64  `json:"game_id"`
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

type Notifier interface {
	// NotifyNextPlayer tells the player to move in game that it is their turn.
	NotifyNextPlayer(ctx context.Context, game *entity.Game) error
	// NotifyNewGame tells every player except the creator about a new game.
	NotifyNewGame(ctx context.Context, game *entity.Game, creatorID string) error
}

type nopNotifier struct{}

// NewNopNotifier drops every notification.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) NotifyNextPlayer(context.Context, *entity.Game) error {
	return nil
}

func (nopNotifier) NotifyNewGame(context.Context, *entity.Game, string) error {
	return nil
}

// AsyncNotifier sends notifications in the background. Failures are logged and never returned.
type AsyncNotifier struct {
	logger   zerolog.Logger
	notifier Notifier
	timeout  time.Duration

	wg sync.WaitGroup
}

func NewAsyncNotifier(logger zerolog.Logger, notifier Notifier, timeout time.Duration) *AsyncNotifier {
	return &AsyncNotifier{
		logger:   logger.With().Str("component", "notifier").Logger(),
		notifier: notifier,
		timeout:  timeout,
	}
}

func (that *AsyncNotifier) NotifyNextPlayer(ctx context.Context, game *entity.Game) error {
	that.dispatch(ctx, game.ID, EventNextTurn, func(ctx context.Context) error {
		return that.notifier.NotifyNextPlayer(ctx, game)
	})

	return nil
}

func (that *AsyncNotifier) NotifyNewGame(ctx context.Context, game *entity.Game, creatorID string) error {
	that.dispatch(ctx, game.ID, EventNewGame, func(ctx context.Context) error {
		return that.notifier.NotifyNewGame(ctx, game, creatorID)
	})

	return nil
}

// Wait blocks until every dispatched notification has finished.
func (that *AsyncNotifier) Wait() {
	that.wg.Wait()
}

func (that *AsyncNotifier) dispatch(ctx context.Context, gameID int64, eventType string, send func(ctx context.Context) error) {
	// detached from the request so it outlives the response
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.timeout)

	that.wg.Add(1)
	go func() {
		defer that.wg.Done()
		defer cancel()

		if err := send(sendCtx); err != nil {
			that.logger.Warn().Err(err).Int64("game_id", gameID).Str("event", eventType).Msg("notification failed")
		}
	}()
}
