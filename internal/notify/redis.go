package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

var ErrNoMover = errors.New("game has no player to move")

// RedisNotifier publishes events on a per-player pub/sub channel: <prefix>:<player id>.
type RedisNotifier struct {
	client *redis.Client
	prefix string
}

func NewRedisNotifier(client *redis.Client, prefix string) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		prefix: prefix,
	}
}

// Channel is where events for playerID are published.
func (that *RedisNotifier) Channel(playerID string) string {
	return that.prefix + ":" + playerID
}

func (that *RedisNotifier) NotifyNextPlayer(ctx context.Context, game *entity.Game) error {
	mover, ok := game.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: game %d", ErrNoMover, game.ID)
	}

	return that.publish(ctx, newEvent(EventNextTurn, game.ID, mover.PlayerID, nextTurnMessage))
}

func (that *RedisNotifier) NotifyNewGame(ctx context.Context, game *entity.Game, creatorID string) error {
	var errs []error
	for _, player := range game.Players {
		if player.PlayerID == creatorID {
			continue
		}

		if err := that.publish(ctx, newEvent(EventNewGame, game.ID, player.PlayerID, newGameMessage)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (that *RedisNotifier) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(event.PlayerID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event for %s: %w", event.Type, event.PlayerID, err)
	}

	return nil
}

func newEvent(eventType string, gameID int64, playerID, message string) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		GameID:   gameID,
		PlayerID: playerID,
		Message:  message,
	}
}
