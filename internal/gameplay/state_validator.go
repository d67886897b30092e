package gameplay

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

// ValidateState checks a submission against the game it is played in.
// Rules run in a fixed order and the first failure is returned.
func ValidateState(game *entity.Game, playerID string, submission entity.Submission) error {
	if err := game.ConfirmInProgress(); err != nil {
		return err
	}

	if err := validateCurrentTurn(game, playerID); err != nil {
		return err
	}

	mover, _ := game.CurrentPlayer()
	if !mover.Rack.Contains(submission.RackTiles()) {
		return apperror.ErrPlayRackTiles
	}

	if !submission.IsPlay() {
		return nil
	}

	grid := game.Grid()

	if err := validateFirstTurn(grid, submission.Placements); err != nil {
		return err
	}

	if err := validatePlacementCells(grid, submission.Placements); err != nil {
		return err
	}

	if err := validateConnected(grid, submission.Placements); err != nil {
		return err
	}

	return validateContiguous(grid, submission.Placements)
}

func validateCurrentTurn(game *entity.Game, playerID string) error {
	mover, ok := game.CurrentPlayer()
	if !ok || mover.PlayerID != playerID {
		return apperror.ErrPlayCurrentTurn
	}

	return nil
}

// validateFirstTurn requires the opening play to cover the centre.
func validateFirstTurn(grid *entity.BoardGrid, placements []entity.Placement) error {
	if !grid.IsFirstTurn() {
		return nil
	}

	centerRow, centerColumn := grid.Center()
	for _, placement := range placements {
		if placement.Row == centerRow && placement.Column == centerColumn {
			return nil
		}
	}

	return apperror.ErrPlayFirstTurn
}

func validatePlacementCells(grid *entity.BoardGrid, placements []entity.Placement) error {
	for _, placement := range placements {
		if !grid.InBounds(placement.Row, placement.Column) {
			return fmt.Errorf("%w: position (%d, %d) is off the board", apperror.ErrPlaySchema, placement.Row, placement.Column)
		}
	}

	for _, placement := range placements {
		if grid.Occupied(placement.Row, placement.Column) {
			return apperror.ErrPlayOverlap
		}
	}

	return nil
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// validateConnected requires one placement to touch an existing tile, except on the first turn.
func validateConnected(grid *entity.BoardGrid, placements []entity.Placement) error {
	if grid.IsFirstTurn() {
		return nil
	}

	for _, placement := range placements {
		for _, offset := range neighbours {
			if grid.Occupied(placement.Row+offset[0], placement.Column+offset[1]) {
				return nil
			}
		}
	}

	return apperror.ErrPlayConnected
}

// validateContiguous walks the span of the placements and rejects any empty cell inside it.
func validateContiguous(grid *entity.BoardGrid, placements []entity.Placement) error {
	if len(placements) <= 1 {
		return nil
	}

	sorted := sortPlacements(placements)
	first, last := sorted[0], sorted[len(sorted)-1]
	vertical := sorted[0].Column == sorted[1].Column

	placed := make(map[[2]int]struct{}, len(sorted))
	for _, placement := range sorted {
		placed[[2]int{placement.Row, placement.Column}] = struct{}{}
	}

	row, column := first.Row, first.Column
	for row <= last.Row && column <= last.Column {
		_, isPlaced := placed[[2]int{row, column}]
		if !isPlaced && !grid.Occupied(row, column) {
			return apperror.ErrPlayContiguous
		}

		if vertical {
			row++
		} else {
			column++
		}
	}

	return nil
}

func sortPlacements(placements []entity.Placement) []entity.Placement {
	sorted := append([]entity.Placement(nil), placements...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}

		return sorted[i].Column < sorted[j].Column
	})

	return sorted
}
