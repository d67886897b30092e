package gameplay

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

// SpacesPerTileMin is how many board squares each tile of the distribution needs.
const SpacesPerTileMin = 2

type NewGameParams struct {
	Creator      entity.GamePlayer
	Opponents    []entity.GamePlayer
	Layout       entity.BoardLayout
	DictionaryID int64
	Distribution entity.TileMultiset
}

// SetupGame builds a fresh game: shuffled turn order, full racks dealt from the distribution, the rest in the bag.
func SetupGame(params NewGameParams, rnd entity.Random, now time.Time) (*entity.Game, error) {
	if err := validateNewGame(params); err != nil {
		return nil, err
	}

	players := append([]entity.GamePlayer{params.Creator}, params.Opponents...)
	for i := len(players) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		players[i], players[j] = players[j], players[i]
	}

	bag := params.Distribution.Clone()
	for i := range players {
		rack, err := bag.Sample(rnd, min(entity.RackCapacity, bag.TotalCount()))
		if err != nil {
			return nil, fmt.Errorf("failed to deal rack: %w", err)
		}

		players[i].TurnOrder = i
		players[i].Score = 0
		players[i].Rack = rack
		bag = bag.Difference(rack)
	}

	return &entity.Game{
		DictionaryID: params.DictionaryID,
		Layout:       params.Layout,
		Players:      players,
		Bag:          bag,
		Board:        []entity.PlayedTile{},
		TurnNumber:   0,
		StartedAt:    now,
	}, nil
}

func validateNewGame(params NewGameParams) error {
	if len(params.Opponents) < 1 || len(params.Opponents) > entity.MaxGamePlayer-1 {
		return fmt.Errorf("%w: %d opponents", apperror.ErrNewGameSchema, len(params.Opponents))
	}

	seen := map[string]struct{}{params.Creator.PlayerID: {}}
	for _, opponent := range params.Opponents {
		if opponent.PlayerID == params.Creator.PlayerID {
			return apperror.ErrNewGameSelfOpponent
		}

		if _, ok := seen[opponent.PlayerID]; ok {
			return fmt.Errorf("%w: duplicate opponent %s", apperror.ErrNewGameSchema, opponent.PlayerID)
		}
		seen[opponent.PlayerID] = struct{}{}
	}

	if params.Distribution.TotalCount()*SpacesPerTileMin > params.Layout.Rows*params.Layout.Columns {
		return apperror.ErrNewGameLayoutDistribution
	}

	return nil
}
