package entity

// RawPlacement is one element of a turn submission as it arrives on the wire.
// Pointers distinguish a missing field from a zero value.
type RawPlacement struct {
	Row        *int    `json:"row"`
	Column     *int    `json:"column"`
	Letter     *string `json:"letter"`
	Value      *int    `json:"value"`
	IsBlank    *bool   `json:"is_blank"`
	IsExchange *bool   `json:"is_exchange"`
}

type TurnKind string

const (
	TurnPass     TurnKind = "pass"
	TurnExchange TurnKind = "exchange"
	TurnPlay     TurnKind = "play"
)

// Placement is a validated submission entry. Row and Column are meaningful only for plays.
type Placement struct {
	Row    int
	Column int
	Tile   TileSpec
}

// Submission is a turn that passed request validation.
type Submission struct {
	Kind       TurnKind
	Placements []Placement
}

func (that Submission) IsPass() bool {
	return that.Kind == TurnPass
}

func (that Submission) IsExchange() bool {
	return that.Kind == TurnExchange
}

func (that Submission) IsPlay() bool {
	return that.Kind == TurnPlay
}

// RackTiles are the rack keys consumed by the submission, whether played or exchanged.
func (that Submission) RackTiles() TileMultiset {
	result := make(TileMultiset, len(that.Placements))
	for _, placement := range that.Placements {
		result[placement.Tile.RackKey()]++
	}

	return result
}

// PlayedTiles are the board tiles a play commits, in submission order.
func (that Submission) PlayedTiles() []PlayedTile {
	if !that.IsPlay() {
		return nil
	}

	result := make([]PlayedTile, 0, len(that.Placements))
	for _, placement := range that.Placements {
		result = append(result, PlayedTile{Tile: placement.Tile, Row: placement.Row, Column: placement.Column})
	}

	return result
}
