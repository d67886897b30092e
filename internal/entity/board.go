package entity

import (
	"errors"
	"fmt"
)

var ErrEvenDimension = errors.New("board dimensions must be odd")

// MaxBoardDimension bounds rows and columns of any layout.
const MaxBoardDimension = 21

// Modifier multiplies the value of a tile placed on a square, or the word through it.
type Modifier struct {
	LetterMultiplier int `json:"letter_multiplier"`
	WordMultiplier   int `json:"word_multiplier"`
}

var NoModifier = Modifier{LetterMultiplier: 1, WordMultiplier: 1}

type PositionedModifier struct {
	Row      int      `json:"row"`
	Column   int      `json:"column"`
	Modifier Modifier `json:"modifier"`
}

// BoardLayout describes an empty board. It does not change once created.
type BoardLayout struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	Rows      int                  `json:"rows"`
	Columns   int                  `json:"columns"`
	Modifiers []PositionedModifier `json:"modifiers"`
}

func NewBoardLayout(name string, rows, columns int, modifiers []PositionedModifier) (*BoardLayout, error) {
	if rows%2 == 0 || columns%2 == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEvenDimension, rows, columns)
	}

	if rows < 1 || columns < 1 || rows > MaxBoardDimension || columns > MaxBoardDimension {
		return nil, fmt.Errorf("board dimensions %dx%d out of range", rows, columns)
	}

	for _, modifier := range modifiers {
		if modifier.Row < 0 || modifier.Row >= rows || modifier.Column < 0 || modifier.Column >= columns {
			return nil, fmt.Errorf("modifier at (%d, %d) is off the board", modifier.Row, modifier.Column)
		}
	}

	return &BoardLayout{
		Name:      name,
		Rows:      rows,
		Columns:   columns,
		Modifiers: modifiers,
	}, nil
}

// PlayedTile is a tile committed to a board position. It never moves.
type PlayedTile struct {
	Tile   TileSpec `json:"tile"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
}

// BoardGrid is a read model of a board: layout modifiers plus the tiles played so far.
type BoardGrid struct {
	rows      int
	columns   int
	tiles     [][]*TileSpec
	modifiers [][]Modifier
}

func NewBoardGrid(layout BoardLayout, played []PlayedTile) *BoardGrid {
	grid := &BoardGrid{
		rows:      layout.Rows,
		columns:   layout.Columns,
		tiles:     make([][]*TileSpec, layout.Rows),
		modifiers: make([][]Modifier, layout.Rows),
	}

	for row := range layout.Rows {
		grid.tiles[row] = make([]*TileSpec, layout.Columns)
		grid.modifiers[row] = make([]Modifier, layout.Columns)
		for column := range layout.Columns {
			grid.modifiers[row][column] = NoModifier
		}
	}

	for _, positioned := range layout.Modifiers {
		if grid.InBounds(positioned.Row, positioned.Column) {
			grid.modifiers[positioned.Row][positioned.Column] = positioned.Modifier
		}
	}

	for _, playedTile := range played {
		if grid.InBounds(playedTile.Row, playedTile.Column) {
			tile := playedTile.Tile
			grid.tiles[playedTile.Row][playedTile.Column] = &tile
		}
	}

	return grid
}

func (that *BoardGrid) Rows() int {
	return that.rows
}

func (that *BoardGrid) Columns() int {
	return that.columns
}

// Center is exact because both dimensions are odd.
func (that *BoardGrid) Center() (int, int) {
	return that.rows / 2, that.columns / 2
}

func (that *BoardGrid) InBounds(row, column int) bool {
	return row >= 0 && row < that.rows && column >= 0 && column < that.columns
}

// TileAt returns the played tile at a position, if any.
func (that *BoardGrid) TileAt(row, column int) (TileSpec, bool) {
	if !that.InBounds(row, column) || that.tiles[row][column] == nil {
		return TileSpec{}, false
	}

	return *that.tiles[row][column], true
}

func (that *BoardGrid) Occupied(row, column int) bool {
	_, ok := that.TileAt(row, column)
	return ok
}

func (that *BoardGrid) ModifierAt(row, column int) Modifier {
	if !that.InBounds(row, column) {
		return NoModifier
	}

	return that.modifiers[row][column]
}

// IsFirstTurn reports whether the centre square is still free, which holds until a word is played.
func (that *BoardGrid) IsFirstTurn() bool {
	row, column := that.Center()
	return !that.Occupied(row, column)
}
