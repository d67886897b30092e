package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

func resolve(layout entity.BoardLayout, board []entity.PlayedTile, submission entity.Submission) Resolution {
	return ResolveWords(entity.NewBoardGrid(layout, board), submission)
}

func TestResolveWords_SingleTile(t *testing.T) {
	t.Run("Lone tile on the plain centre scores its value", func(t *testing.T) {
		// Given: an empty unmodified board
		// When: A is placed on the centre
		resolution := resolve(plainLayout(), nil, play(at(7, 7, tileA)))

		// Then
		assert.Equal(t, "A", resolution.PrimaryWord)
		assert.Empty(t, resolution.SecondaryWords)
		assert.Equal(t, 1, resolution.Score)
	})

	t.Run("Lone tile on the standard centre gets the double word", func(t *testing.T) {
		resolution := resolve(entity.StandardLayout(), nil, play(at(7, 7, tileA)))

		assert.Equal(t, "A", resolution.PrimaryWord)
		assert.Equal(t, 2, resolution.Score)
	})

	t.Run("Extending a word makes it the primary", func(t *testing.T) {
		// Given: CAT across the centre
		// When: S is added at the end
		resolution := resolve(plainLayout(), boardWithCat(), play(at(7, 9, tileS)))

		// Then: the row word wins and there is no secondary word
		assert.Equal(t, "CATS", resolution.PrimaryWord)
		assert.Empty(t, resolution.SecondaryWords)
		assert.Equal(t, 6, resolution.Score)
	})

	t.Run("Longer column word is primary", func(t *testing.T) {
		resolution := resolve(plainLayout(), boardWithCat(), play(at(8, 7, tileT)))

		assert.Equal(t, "AT", resolution.PrimaryWord)
		assert.Empty(t, resolution.SecondaryWords)
		assert.Equal(t, 2, resolution.Score)
	})

	t.Run("Tile forming two words scores both, row word first on a tie", func(t *testing.T) {
		// Given: AT on row 7 and O below and right of it
		board := []entity.PlayedTile{onBoard(7, 6, tileA), onBoard(7, 7, tileT), onBoard(8, 8, tileO)}

		// When: X goes under the T
		resolution := resolve(plainLayout(), board, play(at(8, 7, tileX)))

		// Then: XO across and TX down
		assert.Equal(t, "XO", resolution.PrimaryWord)
		assert.Equal(t, []string{"TX"}, resolution.SecondaryWords)
		assert.Equal(t, 9+9, resolution.Score)
	})
}

func TestResolveWords_Line(t *testing.T) {
	t.Run("Opening word on the standard board", func(t *testing.T) {
		resolution := resolve(entity.StandardLayout(), nil, play(at(7, 6, tileC), at(7, 7, tileA), at(7, 8, tileT)))

		assert.Equal(t, "CAT", resolution.PrimaryWord)
		assert.Empty(t, resolution.SecondaryWords)
		assert.Equal(t, (3+1+1)*2, resolution.Score)
	})

	t.Run("Submission order does not change the primary word", func(t *testing.T) {
		resolution := resolve(plainLayout(), nil, play(at(7, 8, tileT), at(7, 6, tileC), at(7, 7, tileA)))

		assert.Equal(t, "CAT", resolution.PrimaryWord)
	})

	t.Run("Cross words are collected in submission order", func(t *testing.T) {
		// Given: CAT across the centre
		// When: T and A go underneath C and A, in that order
		resolution := resolve(plainLayout(), boardWithCat(), play(at(8, 7, tileT), at(8, 6, tileA)))

		// Then: AT across, CA and AT down
		assert.Equal(t, "AT", resolution.PrimaryWord)
		assert.Equal(t, []string{"AT", "CA"}, resolution.SecondaryWords)
		assert.Equal(t, 2+2+4, resolution.Score)
	})

	t.Run("Vertical primary word through an existing tile", func(t *testing.T) {
		resolution := resolve(plainLayout(), boardWithCat(), play(at(5, 7, tileS), at(6, 7, tileE), at(8, 7, tileT)))

		assert.Equal(t, "SEAT", resolution.PrimaryWord)
		assert.Empty(t, resolution.SecondaryWords)
		assert.Equal(t, 4, resolution.Score)
	})

	t.Run("Multipliers apply only to newly placed tiles", func(t *testing.T) {
		// Given: a double word under the existing A and a triple letter and double word ahead of the T
		layout := plainLayout()
		layout.Modifiers = []entity.PositionedModifier{
			{Row: 7, Column: 7, Modifier: entity.Modifier{LetterMultiplier: 1, WordMultiplier: 2}},
			{Row: 7, Column: 9, Modifier: entity.Modifier{LetterMultiplier: 3, WordMultiplier: 1}},
			{Row: 7, Column: 10, Modifier: entity.Modifier{LetterMultiplier: 1, WordMultiplier: 2}},
		}

		// When: CAT becomes CATXO
		resolution := resolve(layout, boardWithCat(), play(at(7, 9, tileX), at(7, 10, tileO)))

		// Then: (3 + 1 + 1 + 8*3 + 1) * 2, the centre double word is not reused
		assert.Equal(t, "CATXO", resolution.PrimaryWord)
		assert.Equal(t, 60, resolution.Score)
	})

	t.Run("Played blank spells its letter and scores nothing", func(t *testing.T) {
		blankS := entity.TileSpec{Letter: "S", IsBlank: true}

		resolution := resolve(plainLayout(), boardWithCat(), play(at(7, 9, blankS)))

		assert.Equal(t, "CATS", resolution.PrimaryWord)
		assert.Equal(t, 5, resolution.Score)
	})
}

func TestResolveWords_Bingo(t *testing.T) {
	seven := make([]entity.Placement, 0, entity.RackCapacity)
	for column := 4; column < 4+entity.RackCapacity; column++ {
		seven = append(seven, at(7, column, tileE))
	}

	t.Run("Seven tiles earn the bonus once", func(t *testing.T) {
		resolution := resolve(plainLayout(), nil, play(seven...))

		assert.Equal(t, "EEEEEEE", resolution.PrimaryWord)
		assert.Equal(t, 7+entity.BingoBonus, resolution.Score)
	})

	t.Run("Six tiles do not", func(t *testing.T) {
		resolution := resolve(plainLayout(), nil, play(seven[:6]...))

		assert.Equal(t, 6, resolution.Score)
	})
}

func TestResolveWords_NoWords(t *testing.T) {
	for name, submission := range map[string]entity.Submission{
		"pass":     pass(),
		"exchange": exchange(tileA, tileE),
	} {
		t.Run(name, func(t *testing.T) {
			resolution := resolve(plainLayout(), boardWithCat(), submission)

			assert.Empty(t, resolution.PrimaryWord)
			assert.Empty(t, resolution.SecondaryWords)
			assert.Zero(t, resolution.Score)
			assert.Nil(t, resolution.Words())
		})
	}
}

func TestResolveWords_Deterministic(t *testing.T) {
	// Given: the same board and submission
	submission := play(at(8, 7, tileT), at(8, 6, tileA))

	// When: resolving twice on separately built grids
	first := resolve(entity.StandardLayout(), boardWithCat(), submission)
	second := resolve(entity.StandardLayout(), boardWithCat(), submission)

	// Then
	require.Equal(t, first, second)
	assert.Equal(t, []string{"AT", "AT", "CA"}, first.Words())
}
