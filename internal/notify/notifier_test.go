package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
	"github.com/rocketscienceinc/wordgame-backend/testing/suite"
)

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) NotifyNextPlayer(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockNotifier) NotifyNewGame(ctx context.Context, game *entity.Game, creatorID string) error {
	return that.Called(ctx, game, creatorID).Error(0)
}

func twoPlayerGame() *entity.Game {
	return &entity.Game{
		ID:         9,
		TurnNumber: 1,
		Players: []entity.GamePlayer{
			{ID: 1, PlayerID: "alice", TurnOrder: 0},
			{ID: 2, PlayerID: "bob", TurnOrder: 1},
		},
	}
}

func TestAsyncNotifier(t *testing.T) {
	t.Run("Sends in the background with a live context", func(t *testing.T) {
		logger := zerolog.New(zerolog.NewTestWriter(t))
		inner := &mockNotifier{}
		game := twoPlayerGame()

		inner.On("NotifyNextPlayer", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), game).Return(nil).Once()

		// Given: the request context is already gone
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When
		notifier := NewAsyncNotifier(logger, inner, time.Second)
		require.NoError(t, notifier.NotifyNextPlayer(ctx, game))
		notifier.Wait()

		// Then
		inner.AssertExpectations(t)
	})

	t.Run("Failures are swallowed", func(t *testing.T) {
		logger := zerolog.New(zerolog.NewTestWriter(t))
		inner := &mockNotifier{}
		game := twoPlayerGame()
		inner.On("NotifyNewGame", mock.Anything, game, "alice").Return(errors.New("unreachable")).Once()

		notifier := NewAsyncNotifier(logger, inner, time.Second)
		err := notifier.NotifyNewGame(context.Background(), game, "alice")
		notifier.Wait()

		require.NoError(t, err)
		inner.AssertExpectations(t)
	})
}

func TestRedisNotifier(t *testing.T) {
	ctx, client := suite.NewRedis(t)
	notifier := NewRedisNotifier(client, "notifications")

	receive := func(t *testing.T, playerID string, send func() error) Event {
		t.Helper()

		sub := client.Subscribe(ctx, notifier.Channel(playerID))
		defer sub.Close()
		_, err := sub.Receive(ctx)
		require.NoError(t, err)

		require.NoError(t, send())

		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		msg, err := sub.ReceiveMessage(waitCtx)
		require.NoError(t, err)

		var event Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))

		return event
	}

	t.Run("Next player is the one whose turn it is", func(t *testing.T) {
		// Given: turn 1 of a two player game belongs to bob
		game := twoPlayerGame()

		// When
		event := receive(t, "bob", func() error {
			return notifier.NotifyNextPlayer(ctx, game)
		})

		// Then
		assert.Equal(t, EventNextTurn, event.Type)
		assert.Equal(t, int64(9), event.GameID)
		assert.Equal(t, "bob", event.PlayerID)
		assert.Equal(t, "It is your turn to play next!", event.Message)
		assert.NotEmpty(t, event.ID)
	})

	t.Run("New game skips the creator", func(t *testing.T) {
		game := twoPlayerGame()

		event := receive(t, "bob", func() error {
			return notifier.NotifyNewGame(ctx, game, "alice")
		})

		assert.Equal(t, EventNewGame, event.Type)
		assert.Equal(t, "bob", event.PlayerID)
	})

	t.Run("Game without players", func(t *testing.T) {
		err := notifier.NotifyNextPlayer(ctx, &entity.Game{ID: 3})

		require.ErrorIs(t, err, ErrNoMover)
	})
}
