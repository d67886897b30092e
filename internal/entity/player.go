package entity

type GamePlayer struct {
	ID          int64        `json:"id"`
	PlayerID    string       `json:"player_id"`
	DisplayName string       `json:"display_name"`
	Rack        TileMultiset `json:"-"`
	Score       int          `json:"score"`
	TurnOrder   int          `json:"turn_order"`
}

func (that *GamePlayer) RackValue() int {
	return that.Rack.TotalValue()
}
