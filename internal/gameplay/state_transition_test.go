package gameplay

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

var playedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func boardDelta(tiles []entity.PlayedTile) entity.TileMultiset {
	delta := entity.TileMultiset{}
	for _, tile := range tiles {
		delta[tile.Tile.RackKey()]++
	}

	return delta
}

func applyResolved(t *testing.T, game *entity.Game, submission entity.Submission, seed int64) *TurnResult {
	t.Helper()

	resolution := ResolveWords(game.Grid(), submission)
	result, err := ApplyTurn(game, submission, resolution, rand.New(rand.NewSource(seed)), playedAt)
	require.NoError(t, err)

	return result
}

func TestApplyTurn_Play(t *testing.T) {
	// Given: an opening position
	game := newGame(plainLayout())
	submission := play(at(7, 6, tileC), at(7, 7, tileA), at(7, 8, tileT))

	// When: alice plays CAT
	result := applyResolved(t, game, submission, 1)

	// Then: the move is recorded
	mover := result.Game.Players[0]
	assert.Equal(t, "CAT", result.Move.PrimaryWord)
	assert.Empty(t, result.Move.SecondaryWords)
	assert.Equal(t, 5, result.Move.Score)
	assert.Equal(t, 0, result.Move.TurnNumber)
	assert.Equal(t, int64(1), result.Move.GamePlayerID)
	assert.Equal(t, playedAt, result.Move.PlayedAt)
	assert.Equal(t, game.Players[0].Rack, result.Move.RackTiles)
	assert.True(t, result.Move.ExchangedTiles.IsEmpty())
	assert.Equal(t, submission.PlayedTiles(), result.Move.PlayedTiles)

	// Then: the game moves on
	assert.Equal(t, 1, result.Game.TurnNumber)
	assert.Equal(t, 5, mover.Score)
	assert.Len(t, result.Game.Board, 3)
	assert.Equal(t, entity.RackCapacity, mover.Rack.TotalCount())
	assert.Equal(t, 3, result.Drawn.TotalCount())
	assert.Equal(t, 97, result.Game.Bag.TotalCount())
	assert.False(t, result.Completed)

	// Then: the input game is untouched
	assert.Equal(t, 0, game.TurnNumber)
	assert.Empty(t, game.Board)
	assert.Equal(t, 100, game.Bag.TotalCount())
	assert.Equal(t, 0, game.Players[0].Score)
}

func TestApplyTurn_Exchange(t *testing.T) {
	// Given: a bag of five Zs
	game := newGame(plainLayout())
	zed := entity.TileSpec{Letter: "Z", Value: 10}
	game.Bag = entity.TileMultiset{zed: 5}

	// When: alice swaps C and the blank
	result := applyResolved(t, game, exchange(tileC, tileBlank), 3)

	// Then: the swapped tiles went back before two were drawn from seven
	mover := result.Game.Players[0]
	assert.Equal(t, entity.RackCapacity, mover.Rack.TotalCount())
	assert.True(t, mover.Rack.Contains(entity.TilesOf(tileA, tileT, tileS, tileE, tileO)))
	assert.Equal(t, 2, result.Drawn.TotalCount())
	assert.True(t, entity.TileMultiset{zed: 5, tileC: 1, tileBlank: 1}.Contains(result.Drawn))
	assert.Equal(t, 5, result.Game.Bag.TotalCount())
	assert.Equal(t, entity.TilesOf(tileC, tileBlank), result.Move.ExchangedTiles)
	assert.True(t, result.Move.IsExchange())
	assert.Zero(t, result.Move.Score)
	assert.Empty(t, result.Move.PrimaryWord)
	assert.Empty(t, result.Game.Board)
	assert.Equal(t, 1, result.Game.TurnNumber)
}

func TestApplyTurn_Pass(t *testing.T) {
	game := newGame(plainLayout())

	result := applyResolved(t, game, pass(), 1)

	assert.True(t, result.Move.IsPass())
	assert.Equal(t, game.Players[0].Rack, result.Game.Players[0].Rack)
	assert.Equal(t, game.Bag, result.Game.Bag)
	assert.True(t, result.Drawn.IsEmpty())
	assert.Equal(t, 1, result.Game.TurnNumber)
}

func TestApplyTurn_NeverOverdrawsTheBag(t *testing.T) {
	// Given: two tiles left in the bag
	game := newGame(plainLayout())
	game.Bag = entity.TilesOf(tileO, tileO)

	// When: three tiles are played
	result := applyResolved(t, game, play(at(7, 6, tileC), at(7, 7, tileA), at(7, 8, tileT)), 1)

	// Then: both are drawn and the rack ends one short
	assert.Equal(t, 6, result.Game.Players[0].Rack.TotalCount())
	assert.True(t, result.Game.Bag.IsEmpty())
	assert.False(t, result.Completed)
}

func TestApplyTurn_ConservesTiles(t *testing.T) {
	cases := map[string]entity.Submission{
		"play":     play(at(7, 6, tileC), at(7, 7, entity.TileSpec{Letter: "Q", IsBlank: true}), at(7, 8, tileT)),
		"exchange": exchange(tileS, tileE, tileO),
		"pass":     pass(),
	}

	for name, submission := range cases {
		t.Run(name, func(t *testing.T) {
			for seed := range int64(20) {
				// Given: a fresh opening position
				game := newGame(plainLayout())
				before := game.Players[0].Rack.Union(game.Bag)

				// When
				result := applyResolved(t, game, submission, seed)

				// Then: rack + bag before == rack + bag + board delta after
				after := result.Game.Players[0].Rack.Union(result.Game.Bag).Union(boardDelta(result.Move.PlayedTiles))
				require.True(t, before.Equal(after), "seed %d", seed)
			}
		})
	}
}

func TestApplyTurn_Completion(t *testing.T) {
	// Given: an empty bag, alice holding exactly the seven tiles she plays
	// and bob stuck with X, A, A
	game := newGame(plainLayout())
	game.Bag = entity.TileMultiset{}
	game.Players[0].Rack = entity.TilesOf(tileE, tileE, tileE, tileE, tileE, tileE, tileE)
	game.Players[0].Score = 40
	game.Players[1].Rack = entity.TilesOf(tileX, tileA, tileA)
	game.Players[1].Score = 30

	seven := make([]entity.Placement, 0, entity.RackCapacity)
	for column := 4; column < 4+entity.RackCapacity; column++ {
		seven = append(seven, at(7, column, tileE))
	}
	submission := play(seven...)
	require.NoError(t, ValidateState(game, "alice", submission))

	// When: she goes out with a bingo
	result := applyResolved(t, game, submission, 1)

	// Then: the game is over and bob's rack value moves to alice
	require.True(t, result.Completed)
	require.NotNil(t, result.Game.CompletedAt)
	assert.Equal(t, playedAt, *result.Game.CompletedAt)
	assert.Equal(t, 40+7+entity.BingoBonus+10, result.Game.Players[0].Score)
	assert.Equal(t, 30-10, result.Game.Players[1].Score)
	assert.True(t, result.Game.Players[0].Rack.IsEmpty())

	// Then: no further turn is accepted
	err := ValidateState(result.Game, "bob", pass())
	require.ErrorIs(t, err, apperror.ErrPlayComplete)

	_, err = ApplyTurn(result.Game, pass(), Resolution{}, rand.New(rand.NewSource(1)), playedAt)
	require.ErrorIs(t, err, apperror.ErrPlayComplete)
}

func TestApplyTurn_RejectsMissingRackTiles(t *testing.T) {
	game := newGame(plainLayout())

	_, err := ApplyTurn(game, play(at(7, 7, tileX)), Resolution{}, rand.New(rand.NewSource(1)), playedAt)

	require.ErrorIs(t, err, apperror.ErrPlayRackTiles)
}
