package gameplay

import (
	"strings"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

// Resolution is what a turn spells and what it is worth.
// PrimaryWord is empty for passes and exchanges.
type Resolution struct {
	PrimaryWord    string
	SecondaryWords []string
	Score          int
}

// Words lists the primary word followed by the secondary words.
func (that Resolution) Words() []string {
	if that.PrimaryWord == "" {
		return nil
	}

	return append([]string{that.PrimaryWord}, that.SecondaryWords...)
}

type axis int

const (
	horizontal axis = iota
	vertical
)

func (that axis) cross() axis {
	if that == horizontal {
		return vertical
	}

	return horizontal
}

type segmentCell struct {
	tile     entity.TileSpec
	modifier entity.Modifier
	isNew    bool
}

type segment []segmentCell

func (that segment) word() string {
	var builder strings.Builder
	for _, cell := range that {
		builder.WriteString(cell.tile.Letter)
	}

	return builder.String()
}

// score applies letter and word multipliers of newly placed tiles only.
func (that segment) score() int {
	sum, wordMultiplier := 0, 1
	for _, cell := range that {
		if cell.isNew {
			sum += cell.tile.Value * cell.modifier.LetterMultiplier
			wordMultiplier *= cell.modifier.WordMultiplier
			continue
		}
		sum += cell.tile.Value
	}

	return sum * wordMultiplier
}

type wordResolver struct {
	grid   *entity.BoardGrid
	placed map[[2]int]entity.TileSpec
}

// ResolveWords finds the primary and secondary words of a validated submission and scores them.
// The result depends only on the placements and the board.
func ResolveWords(grid *entity.BoardGrid, submission entity.Submission) Resolution {
	if !submission.IsPlay() || len(submission.Placements) == 0 {
		return Resolution{SecondaryWords: []string{}}
	}

	resolver := &wordResolver{
		grid:   grid,
		placed: make(map[[2]int]entity.TileSpec, len(submission.Placements)),
	}
	for _, placement := range submission.Placements {
		resolver.placed[[2]int{placement.Row, placement.Column}] = placement.Tile
	}

	var resolution Resolution
	if len(submission.Placements) == 1 {
		resolution = resolver.resolveSingle(submission.Placements[0])
	} else {
		resolution = resolver.resolveLine(submission.Placements)
	}

	if len(submission.Placements) == entity.RackCapacity {
		resolution.Score += entity.BingoBonus
	}

	return resolution
}

// resolveSingle picks the longer of the row and column words through a lone tile.
// A lone tile with no neighbours still counts, which only happens on an empty board.
func (that *wordResolver) resolveSingle(placement entity.Placement) Resolution {
	rowWord := that.segment(placement.Row, placement.Column, horizontal)
	columnWord := that.segment(placement.Row, placement.Column, vertical)

	if len(rowWord) == 1 && len(columnWord) == 1 {
		return Resolution{PrimaryWord: rowWord.word(), SecondaryWords: []string{}, Score: rowWord.score()}
	}

	primary, secondary := rowWord, columnWord
	if len(columnWord) > len(rowWord) {
		primary, secondary = columnWord, rowWord
	}

	resolution := Resolution{PrimaryWord: primary.word(), SecondaryWords: []string{}, Score: primary.score()}
	if len(secondary) > 1 {
		resolution.SecondaryWords = append(resolution.SecondaryWords, secondary.word())
		resolution.Score += secondary.score()
	}

	return resolution
}

// resolveLine reads the primary word along the placement line and one cross word per placement.
func (that *wordResolver) resolveLine(placements []entity.Placement) Resolution {
	sorted := sortPlacements(placements)
	primaryAxis := horizontal
	if sorted[0].Column == sorted[1].Column {
		primaryAxis = vertical
	}

	primary := that.segment(sorted[0].Row, sorted[0].Column, primaryAxis)
	resolution := Resolution{PrimaryWord: primary.word(), SecondaryWords: []string{}, Score: primary.score()}

	for _, placement := range placements {
		crossWord := that.segment(placement.Row, placement.Column, primaryAxis.cross())
		if len(crossWord) <= 1 {
			continue
		}
		resolution.SecondaryWords = append(resolution.SecondaryWords, crossWord.word())
		resolution.Score += crossWord.score()
	}

	return resolution
}

// segment collects the run of filled cells through (row, column) along an axis.
func (that *wordResolver) segment(row, column int, along axis) segment {
	rowStep, columnStep := 0, 1
	if along == vertical {
		rowStep, columnStep = 1, 0
	}

	startRow, startColumn := row, column
	for that.filled(startRow-rowStep, startColumn-columnStep) {
		startRow -= rowStep
		startColumn -= columnStep
	}

	var result segment
	for r, c := startRow, startColumn; that.filled(r, c); r, c = r+rowStep, c+columnStep {
		if tile, ok := that.placed[[2]int{r, c}]; ok {
			result = append(result, segmentCell{tile: tile, modifier: that.grid.ModifierAt(r, c), isNew: true})
			continue
		}

		tile, _ := that.grid.TileAt(r, c)
		result = append(result, segmentCell{tile: tile})
	}

	return result
}

func (that *wordResolver) filled(row, column int) bool {
	if !that.grid.InBounds(row, column) {
		return false
	}

	_, ok := that.placed[[2]int{row, column}]
	return ok || that.grid.Occupied(row, column)
}
