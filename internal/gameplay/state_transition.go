package gameplay

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

var ErrNoMover = errors.New("game has no player to move")

// TurnResult is the next state of a game after one turn, computed but not yet stored.
type TurnResult struct {
	Kind      entity.TurnKind
	Game      *entity.Game
	Move      *entity.Move
	Drawn     entity.TileMultiset
	Completed bool
}

// ApplyTurn computes the state that follows a validated and resolved submission.
// The given game is not modified; callers persist the result in one transaction.
func ApplyTurn(game *entity.Game, submission entity.Submission, resolution Resolution, rnd entity.Random, now time.Time) (*TurnResult, error) {
	if err := game.ConfirmInProgress(); err != nil {
		return nil, err
	}

	next := game.Clone()
	mover, ok := next.CurrentPlayer()
	if !ok {
		return nil, ErrNoMover
	}

	rackBefore := mover.Rack.Clone()
	consumed := submission.RackTiles()
	if !rackBefore.Contains(consumed) {
		return nil, apperror.ErrPlayRackTiles
	}

	rack := rackBefore.Difference(consumed)

	exchanged := entity.TileMultiset{}
	if submission.IsExchange() {
		exchanged = consumed
		next.Bag = next.Bag.Union(exchanged)
	}

	drawCount := min(entity.RackCapacity-rack.TotalCount(), next.Bag.TotalCount())
	drawn := entity.TileMultiset{}
	if drawCount > 0 {
		var err error
		if drawn, err = next.Bag.Sample(rnd, drawCount); err != nil {
			return nil, fmt.Errorf("failed to draw tiles: %w", err)
		}
	}

	mover.Rack = rack.Union(drawn)
	next.Bag = next.Bag.Difference(drawn)

	played := submission.PlayedTiles()
	move := &entity.Move{
		GameID:         game.ID,
		GamePlayerID:   mover.ID,
		TurnNumber:     game.TurnNumber,
		PrimaryWord:    resolution.PrimaryWord,
		SecondaryWords: append([]string{}, resolution.SecondaryWords...),
		RackTiles:      rackBefore,
		ExchangedTiles: exchanged,
		PlayedTiles:    played,
		Score:          resolution.Score,
		PlayedAt:       now,
	}

	mover.Score += resolution.Score
	next.Board = append(next.Board, played...)
	next.TurnNumber++

	result := &TurnResult{Kind: submission.Kind, Game: next, Move: move, Drawn: drawn}
	if mover.Rack.IsEmpty() && next.Bag.IsEmpty() {
		finalize(next, mover.ID, now)
		result.Completed = true
	}

	return result, nil
}

// finalize moves every remaining rack value from its holder to the player who went out.
func finalize(game *entity.Game, moverID int64, now time.Time) {
	remaining := 0
	for i := range game.Players {
		rackValue := game.Players[i].RackValue()
		game.Players[i].Score -= rackValue
		remaining += rackValue
	}

	for i := range game.Players {
		if game.Players[i].ID == moverID {
			game.Players[i].Score += remaining
		}
	}

	completedAt := now
	game.CompletedAt = &completedAt
}
