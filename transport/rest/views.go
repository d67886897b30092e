package rest

import (
	"strings"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
	"github.com/rocketscienceinc/wordgame-backend/internal/gameplay"
	"github.com/rocketscienceinc/wordgame-backend/internal/service"
)

type playResponse struct {
	Message        string   `json:"message"`
	Kind           string   `json:"kind"`
	PrimaryWord    *string  `json:"primary_word"`
	SecondaryWords []string `json:"secondary_words"`
	Score          int      `json:"score"`
	TurnNumber     int      `json:"turn_number"`
	Completed      bool     `json:"completed"`
}

func newPlayResponse(result *gameplay.TurnResult) playResponse {
	response := playResponse{
		Message:        "Turn played successfully.",
		Kind:           string(result.Kind),
		SecondaryWords: result.Move.SecondaryWords,
		Score:          result.Move.Score,
		TurnNumber:     result.Game.TurnNumber,
		Completed:      result.Completed,
	}
	if response.SecondaryWords == nil {
		response.SecondaryWords = []string{}
	}
	if result.Move.PrimaryWord != "" {
		response.PrimaryWord = &result.Move.PrimaryWord
	}

	return response
}

type playerView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type gamePlayerView struct {
	Player            playerView `json:"player"`
	Score             int        `json:"score"`
	TurnOrder         int        `json:"turn_order"`
	NumTilesRemaining int        `json:"num_tiles_remaining"`
}

type prevMoveView struct {
	Word           *string             `json:"word"`
	Score          int                 `json:"score"`
	PlayerID       string              `json:"player_id"`
	DisplayName    string              `json:"display_name"`
	ExchangedCount int                 `json:"exchanged_count"`
	PlayedTiles    []entity.PlayedTile `json:"played_tiles"`
}

type gameView struct {
	ID                int64               `json:"id"`
	BoardLayout       entity.BoardLayout  `json:"board_layout"`
	BoardState        []entity.PlayedTile `json:"board_state"`
	GamePlayers       []gamePlayerView    `json:"game_players"`
	Rack              []entity.TileCount  `json:"rack"`
	NumTilesRemaining int                 `json:"num_tiles_remaining"`
	TurnNumber        int                 `json:"turn_number"`
	WhoseTurnName     *string             `json:"whose_turn_name"`
	PrevMove          *prevMoveView       `json:"prev_move"`
	Completed         *int64              `json:"completed"`
	FetcherPlayerID   string              `json:"fetcher_player_id"`
}

func newGameView(state *service.GameState) gameView {
	game := state.Game
	view := gameView{
		ID:                game.ID,
		BoardLayout:       game.Layout,
		BoardState:        game.Board,
		GamePlayers:       make([]gamePlayerView, 0, len(game.Players)),
		Rack:              state.Rack,
		NumTilesRemaining: state.BagCount,
		TurnNumber:        game.TurnNumber,
		FetcherPlayerID:   state.Viewer.PlayerID,
	}
	if view.BoardState == nil {
		view.BoardState = []entity.PlayedTile{}
	}

	for _, player := range game.Players {
		view.GamePlayers = append(view.GamePlayers, gamePlayerView{
			Player:            playerView{ID: player.PlayerID, DisplayName: player.DisplayName},
			Score:             player.Score,
			TurnOrder:         player.TurnOrder,
			NumTilesRemaining: player.Rack.TotalCount(),
		})
	}

	if state.WhoseTurn != nil {
		view.WhoseTurnName = &state.WhoseTurn.DisplayName
	}

	if game.CompletedAt != nil {
		completed := game.CompletedAt.Unix()
		view.Completed = &completed
	}

	if prev := state.PrevMove; prev != nil {
		view.PrevMove = &prevMoveView{
			Score:          prev.Move.Score,
			PlayerID:       prev.Player.PlayerID,
			DisplayName:    prev.Player.DisplayName,
			ExchangedCount: prev.ExchangeCount,
			PlayedTiles:    prev.Move.PlayedTiles,
		}
		if prev.Move.PrimaryWord != "" {
			view.PrevMove.Word = &prev.Move.PrimaryWord
		}
		if view.PrevMove.PlayedTiles == nil {
			view.PrevMove.PlayedTiles = []entity.PlayedTile{}
		}
	}

	return view
}

type moveView struct {
	PrimaryWord    *string            `json:"primary_word"`
	SecondaryWords string             `json:"secondary_words"`
	ExchangedTiles []entity.TileCount `json:"exchanged_tiles"`
	TurnNumber     int                `json:"turn_number"`
	Score          int                `json:"score"`
}

type playerMovesView struct {
	Player    playerView `json:"player"`
	TurnOrder int        `json:"turn_order"`
	Moves     []moveView `json:"moves"`
}

type moveHistoryView struct {
	GamePlayers []playerMovesView `json:"game_players"`
}

func newMoveHistoryView(history []service.PlayerMoves) moveHistoryView {
	view := moveHistoryView{GamePlayers: make([]playerMovesView, 0, len(history))}

	for _, entry := range history {
		moves := make([]moveView, 0, len(entry.Moves))
		for _, move := range entry.Moves {
			item := moveView{
				SecondaryWords: strings.Join(move.SecondaryWords, ","),
				ExchangedTiles: move.ExchangedTiles.Counts(),
				TurnNumber:     move.TurnNumber,
				Score:          move.Score,
			}
			if move.PrimaryWord != "" {
				primary := move.PrimaryWord
				item.PrimaryWord = &primary
			}
			moves = append(moves, item)
		}

		view.GamePlayers = append(view.GamePlayers, playerMovesView{
			Player:    playerView{ID: entry.Player.PlayerID, DisplayName: entry.Player.DisplayName},
			TurnOrder: entry.Player.TurnOrder,
			Moves:     moves,
		})
	}

	return view
}
