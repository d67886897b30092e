package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

var (
	tileA = entity.TileSpec{Letter: "A", Value: 1}
	tileC = entity.TileSpec{Letter: "C", Value: 3}
	tileE = entity.TileSpec{Letter: "E", Value: 1}
	tileT = entity.TileSpec{Letter: "T", Value: 1}
	tileX = entity.TileSpec{Letter: "X", Value: 8}
)

type mockGameStore struct {
	mock.Mock
}

func (that *mockGameStore) Create(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameStore) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameStore) CommitTurn(ctx context.Context, game *entity.Game, move *entity.Move) error {
	return that.Called(ctx, game, move).Error(0)
}

type mockMoveStore struct {
	mock.Mock
}

func (that *mockMoveStore) ListByGame(ctx context.Context, gameID int64) ([]entity.Move, error) {
	args := that.Called(ctx, gameID)
	moves, _ := args.Get(0).([]entity.Move)

	return moves, args.Error(1)
}

func (that *mockMoveStore) LastByGame(ctx context.Context, gameID int64) (*entity.Move, error) {
	args := that.Called(ctx, gameID)
	move, _ := args.Get(0).(*entity.Move)

	return move, args.Error(1)
}

type mockLayoutStore struct {
	mock.Mock
}

func (that *mockLayoutStore) GetByID(ctx context.Context, id int64) (*entity.BoardLayout, error) {
	args := that.Called(ctx, id)
	layout, _ := args.Get(0).(*entity.BoardLayout)

	return layout, args.Error(1)
}

type mockDictionary struct {
	mock.Mock
}

func (that *mockDictionary) IsWord(ctx context.Context, dictionaryID int64, word string) (bool, error) {
	args := that.Called(ctx, dictionaryID, word)

	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) NotifyNextPlayer(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockNotifier) NotifyNewGame(ctx context.Context, game *entity.Game, creatorID string) error {
	return that.Called(ctx, game, creatorID).Error(0)
}

// twoPlayerGame is game 5 on a plain 15x15 board where alice moves first.
func twoPlayerGame() *entity.Game {
	return &entity.Game{
		ID:           5,
		DictionaryID: 1,
		Layout:       entity.BoardLayout{ID: 1, Name: "Plain", Rows: 15, Columns: 15},
		Players: []entity.GamePlayer{
			{ID: 1, PlayerID: "alice", DisplayName: "Alice", TurnOrder: 0, Rack: entity.TilesOf(tileC, tileA, tileT, tileE, tileE, tileX, tileA)},
			{ID: 2, PlayerID: "bob", DisplayName: "Bob", TurnOrder: 1, Rack: entity.TilesOf(tileX, tileA, tileA, tileE, tileE, tileT, tileT)},
		},
		Bag:   entity.StandardDistribution(),
		Board: []entity.PlayedTile{},
	}
}
