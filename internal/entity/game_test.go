package entity

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	return &Game{
		ID:     1,
		Layout: StandardLayout(),
		Players: []GamePlayer{
			{ID: 10, PlayerID: "alice", TurnOrder: 0, Rack: TilesOf(tileA, tileB)},
			{ID: 11, PlayerID: "bob", TurnOrder: 1, Rack: TilesOf(tileZ)},
		},
		Bag: TileMultiset{tileA: 3},
	}
}

func TestGame_CurrentPlayer(t *testing.T) {
	t.Run("Turn order follows turn number modulo player count", func(t *testing.T) {
		// Given: a two player game
		game := newTestGame()

		// When: walking through three turns
		first, ok := game.CurrentPlayer()
		require.True(t, ok)
		game.TurnNumber = 1
		second, _ := game.CurrentPlayer()
		game.TurnNumber = 2
		third, _ := game.CurrentPlayer()

		// Then: players alternate
		assert.Equal(t, "alice", first.PlayerID)
		assert.Equal(t, "bob", second.PlayerID)
		assert.Equal(t, "alice", third.PlayerID)
	})

	t.Run("Returns a pointer into the aggregate", func(t *testing.T) {
		game := newTestGame()

		player, ok := game.CurrentPlayer()
		require.True(t, ok)
		player.Score = 12

		assert.Equal(t, 12, game.Players[0].Score)
	})

	t.Run("PlayerByID", func(t *testing.T) {
		game := newTestGame()

		bob, ok := game.PlayerByID("bob")
		require.True(t, ok)
		assert.Equal(t, int64(11), bob.ID)

		_, ok = game.PlayerByID("carol")
		assert.False(t, ok)
	})
}

func TestGame_ConfirmInProgress(t *testing.T) {
	t.Run("Returns nil while the game is running", func(t *testing.T) {
		game := newTestGame()

		assert.NoError(t, game.ConfirmInProgress())
	})

	t.Run("Returns ErrPlayComplete once completed", func(t *testing.T) {
		// Given: a completed game
		game := newTestGame()
		completedAt := time.Now()
		game.CompletedAt = &completedAt

		// When: checking if a turn may be played
		err := game.ConfirmInProgress()

		// Then
		assert.ErrorIs(t, err, apperror.ErrPlayComplete)
		assert.True(t, game.IsCompleted())
	})
}

func TestGame_Clone(t *testing.T) {
	// Given: a game and its clone
	game := newTestGame()
	clone := game.Clone()

	// When: mutating the clone
	clone.Players[0].Rack[tileZ] = 1
	clone.Players[0].Score = 50
	clone.Bag[tileA] = 0
	clone.Board = append(clone.Board, PlayedTile{Tile: tileA, Row: 7, Column: 7})
	clone.TurnNumber = 9

	// Then: the original is untouched
	assert.Equal(t, TilesOf(tileA, tileB), game.Players[0].Rack)
	assert.Equal(t, 0, game.Players[0].Score)
	assert.Equal(t, 3, game.Bag[tileA])
	assert.Empty(t, game.Board)
	assert.Equal(t, 0, game.TurnNumber)
}

func TestSubmission(t *testing.T) {
	t.Run("Rack tiles strip blank letters", func(t *testing.T) {
		// Given: a play with a blank standing for Q
		submission := Submission{
			Kind: TurnPlay,
			Placements: []Placement{
				{Row: 7, Column: 7, Tile: tileA},
				{Row: 7, Column: 8, Tile: TileSpec{Letter: "Q", IsBlank: true}},
			},
		}

		// Then: the rack keys are A and a letterless blank
		assert.Equal(t, TilesOf(tileA, tileBlank), submission.RackTiles())
		assert.Equal(t, []PlayedTile{
			{Tile: tileA, Row: 7, Column: 7},
			{Tile: TileSpec{Letter: "Q", IsBlank: true}, Row: 7, Column: 8},
		}, submission.PlayedTiles())
	})

	t.Run("Exchanges place nothing on the board", func(t *testing.T) {
		submission := Submission{Kind: TurnExchange, Placements: []Placement{{Tile: tileZ}}}

		assert.Nil(t, submission.PlayedTiles())
		assert.Equal(t, TilesOf(tileZ), submission.RackTiles())
		assert.True(t, submission.IsExchange())
	})
}
