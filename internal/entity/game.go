package entity

import (
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
)

const (
	RackCapacity = 7
	BingoBonus   = 50

	MaxTileValue  = 10
	MaxGamePlayer = 4
)

type Game struct {
	ID           int64        `json:"id"`
	DictionaryID int64        `json:"dictionary_id"`
	Layout       BoardLayout  `json:"board_layout"`
	Players      []GamePlayer `json:"game_players"`
	Bag          TileMultiset `json:"-"`
	Board        []PlayedTile `json:"board_state"`
	TurnNumber   int          `json:"turn_number"`
	StartedAt    time.Time    `json:"started"`
	CompletedAt  *time.Time   `json:"completed"`
}

func (that *Game) IsCompleted() bool {
	return that.CompletedAt != nil
}

// ConfirmInProgress fails once the game has completed; no turn is accepted after that.
func (that *Game) ConfirmInProgress() error {
	if that.IsCompleted() {
		return apperror.ErrPlayComplete
	}

	return nil
}

// CurrentTurnOrder is the turn order of the player to move.
func (that *Game) CurrentTurnOrder() int {
	if len(that.Players) == 0 {
		return 0
	}

	return that.TurnNumber % len(that.Players)
}

// CurrentPlayer returns the player whose turn it is.
func (that *Game) CurrentPlayer() (*GamePlayer, bool) {
	turnOrder := that.CurrentTurnOrder()
	for i := range that.Players {
		if that.Players[i].TurnOrder == turnOrder {
			return &that.Players[i], true
		}
	}

	return nil, false
}

// PlayerByID finds the game player for a player identity.
func (that *Game) PlayerByID(playerID string) (*GamePlayer, bool) {
	for i := range that.Players {
		if that.Players[i].PlayerID == playerID {
			return &that.Players[i], true
		}
	}

	return nil, false
}

func (that *Game) Grid() *BoardGrid {
	return NewBoardGrid(that.Layout, that.Board)
}

// Clone copies the mutable parts of the aggregate so a turn can be computed without touching the original.
func (that *Game) Clone() *Game {
	clone := *that

	clone.Players = make([]GamePlayer, len(that.Players))
	for i, player := range that.Players {
		player.Rack = player.Rack.Clone()
		clone.Players[i] = player
	}

	clone.Bag = that.Bag.Clone()
	clone.Board = append([]PlayedTile(nil), that.Board...)

	if that.CompletedAt != nil {
		completedAt := *that.CompletedAt
		clone.CompletedAt = &completedAt
	}

	return &clone
}

// Move is the audit record of one committed turn.
type Move struct {
	ID             int64        `json:"id"`
	GameID         int64        `json:"game_id"`
	GamePlayerID   int64        `json:"game_player_id"`
	TurnNumber     int          `json:"turn_number"`
	PrimaryWord    string       `json:"primary_word"`
	SecondaryWords []string     `json:"secondary_words"`
	RackTiles      TileMultiset `json:"-"`
	ExchangedTiles TileMultiset `json:"-"`
	PlayedTiles    []PlayedTile `json:"played_tiles"`
	Score          int          `json:"score"`
	PlayedAt       time.Time    `json:"played_time"`
}

func (that *Move) IsExchange() bool {
	return that.ExchangedTiles.TotalCount() > 0
}

func (that *Move) IsPass() bool {
	return len(that.PlayedTiles) == 0 && !that.IsExchange()
}
