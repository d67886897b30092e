package gameplay

import (
	"fmt"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

// ValidateRequest checks the shape of a turn submission without looking at any game.
// It returns the typed submission or the first violated rule: schema, uniformity, axis.
func ValidateRequest(raw []entity.RawPlacement) (entity.Submission, error) {
	if len(raw) > entity.RackCapacity {
		return entity.Submission{}, fmt.Errorf("%w: %d tiles submitted", apperror.ErrPlaySchema, len(raw))
	}

	if len(raw) == 0 {
		return entity.Submission{Kind: entity.TurnPass}, nil
	}

	placements := make([]entity.Placement, 0, len(raw))
	for i, entry := range raw {
		placement, err := validateEntry(entry)
		if err != nil {
			return entity.Submission{}, fmt.Errorf("entry %d: %w", i, err)
		}
		placements = append(placements, placement)
	}

	isExchange := *raw[0].IsExchange
	for _, entry := range raw[1:] {
		if *entry.IsExchange != isExchange {
			return entity.Submission{}, fmt.Errorf("%w: play and exchange entries mixed", apperror.ErrPlaySchema)
		}
	}

	if isExchange {
		return entity.Submission{Kind: entity.TurnExchange, Placements: placements}, nil
	}

	if err := validateAxis(placements); err != nil {
		return entity.Submission{}, err
	}

	return entity.Submission{Kind: entity.TurnPlay, Placements: placements}, nil
}

func validateEntry(entry entity.RawPlacement) (entity.Placement, error) {
	if entry.Value == nil || entry.IsBlank == nil || entry.IsExchange == nil {
		return entity.Placement{}, fmt.Errorf("%w: missing field", apperror.ErrPlaySchema)
	}

	if *entry.Value < 0 || *entry.Value > entity.MaxTileValue {
		return entity.Placement{}, fmt.Errorf("%w: value %d out of range", apperror.ErrPlaySchema, *entry.Value)
	}

	if entry.Letter != nil && !isTileLetter(*entry.Letter) {
		return entity.Placement{}, fmt.Errorf("%w: bad letter %q", apperror.ErrPlaySchema, *entry.Letter)
	}

	tile := entity.TileSpec{Value: *entry.Value, IsBlank: *entry.IsBlank}
	if entry.Letter != nil {
		tile.Letter = *entry.Letter
	}

	if *entry.IsExchange {
		if entry.Row != nil || entry.Column != nil {
			return entity.Placement{}, fmt.Errorf("%w: exchanged tile has a position", apperror.ErrPlaySchema)
		}

		// a blank goes back letterless, a letter tile must say which letter it is
		if tile.IsBlank == (entry.Letter != nil) {
			return entity.Placement{}, fmt.Errorf("%w: exchanged tile letter does not match blank flag", apperror.ErrPlaySchema)
		}

		return entity.Placement{Tile: tile}, nil
	}

	if entry.Row == nil || entry.Column == nil || entry.Letter == nil {
		return entity.Placement{}, fmt.Errorf("%w: played tile needs row, column and letter", apperror.ErrPlaySchema)
	}

	if !inMaxBounds(*entry.Row) || !inMaxBounds(*entry.Column) {
		return entity.Placement{}, fmt.Errorf("%w: position (%d, %d) out of range", apperror.ErrPlaySchema, *entry.Row, *entry.Column)
	}

	return entity.Placement{Row: *entry.Row, Column: *entry.Column, Tile: tile}, nil
}

// validateAxis accepts placements on one row with distinct columns or one column with distinct rows.
// A repeated cell fails both counts.
func validateAxis(placements []entity.Placement) error {
	rows := make(map[int]struct{}, len(placements))
	columns := make(map[int]struct{}, len(placements))
	for _, placement := range placements {
		rows[placement.Row] = struct{}{}
		columns[placement.Column] = struct{}{}
	}

	if len(rows) == 1 && len(columns) == len(placements) {
		return nil
	}

	if len(columns) == 1 && len(rows) == len(placements) {
		return nil
	}

	return apperror.ErrPlayAxis
}

func isTileLetter(letter string) bool {
	return len(letter) == 1 && letter[0] >= 'A' && letter[0] <= 'Z'
}

func inMaxBounds(index int) bool {
	return index >= 0 && index < entity.MaxBoardDimension
}
