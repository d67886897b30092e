package gameplay

import (
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

var (
	tileA     = entity.TileSpec{Letter: "A", Value: 1}
	tileC     = entity.TileSpec{Letter: "C", Value: 3}
	tileE     = entity.TileSpec{Letter: "E", Value: 1}
	tileS     = entity.TileSpec{Letter: "S", Value: 1}
	tileT     = entity.TileSpec{Letter: "T", Value: 1}
	tileO     = entity.TileSpec{Letter: "O", Value: 1}
	tileX     = entity.TileSpec{Letter: "X", Value: 8}
	tileBlank = entity.TileSpec{IsBlank: true}
)

func plainLayout() entity.BoardLayout {
	return entity.BoardLayout{Name: "Plain", Rows: 15, Columns: 15}
}

func at(row, column int, tile entity.TileSpec) entity.Placement {
	return entity.Placement{Row: row, Column: column, Tile: tile}
}

func onBoard(row, column int, tile entity.TileSpec) entity.PlayedTile {
	return entity.PlayedTile{Tile: tile, Row: row, Column: column}
}

func play(placements ...entity.Placement) entity.Submission {
	return entity.Submission{Kind: entity.TurnPlay, Placements: placements}
}

func exchange(tiles ...entity.TileSpec) entity.Submission {
	placements := make([]entity.Placement, 0, len(tiles))
	for _, tile := range tiles {
		placements = append(placements, entity.Placement{Tile: tile})
	}

	return entity.Submission{Kind: entity.TurnExchange, Placements: placements}
}

func pass() entity.Submission {
	return entity.Submission{Kind: entity.TurnPass}
}

// newGame returns a two player game where alice moves first.
func newGame(layout entity.BoardLayout, board ...entity.PlayedTile) *entity.Game {
	return &entity.Game{
		ID:           5,
		DictionaryID: 1,
		Layout:       layout,
		Players: []entity.GamePlayer{
			{ID: 1, PlayerID: "alice", TurnOrder: 0, Rack: entity.TilesOf(tileC, tileA, tileT, tileS, tileE, tileO, tileBlank)},
			{ID: 2, PlayerID: "bob", TurnOrder: 1, Rack: entity.TilesOf(tileX, tileA, tileA, tileE, tileE, tileT, tileT)},
		},
		Bag:   entity.StandardDistribution(),
		Board: board,
	}
}
