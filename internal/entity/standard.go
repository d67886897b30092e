package entity

const (
	StandardLayoutName = "Standard"

	standardSize = 15
)

var (
	tripleWord   = Modifier{LetterMultiplier: 1, WordMultiplier: 3}
	doubleWord   = Modifier{LetterMultiplier: 1, WordMultiplier: 2}
	tripleLetter = Modifier{LetterMultiplier: 3, WordMultiplier: 1}
	doubleLetter = Modifier{LetterMultiplier: 2, WordMultiplier: 1}
)

// upper-left quadrant of the classic board, mirrored onto the other three
var standardQuadrant = map[Modifier][][2]int{
	tripleWord:   {{0, 0}, {0, 7}, {7, 0}},
	doubleWord:   {{1, 1}, {2, 2}, {3, 3}, {4, 4}, {7, 7}},
	tripleLetter: {{1, 5}, {5, 1}, {5, 5}},
	doubleLetter: {{0, 3}, {2, 6}, {3, 0}, {3, 7}, {6, 2}, {6, 6}, {7, 3}},
}

// StandardLayout is the classic 15x15 premium-square layout.
func StandardLayout() BoardLayout {
	seen := make(map[[2]int]bool)
	modifiers := make([]PositionedModifier, 0, 61)

	for _, modifier := range []Modifier{tripleWord, doubleWord, tripleLetter, doubleLetter} {
		for _, position := range standardQuadrant[modifier] {
			row, column := position[0], position[1]
			last := standardSize - 1
			for _, mirrored := range [][2]int{{row, column}, {row, last - column}, {last - row, column}, {last - row, last - column}} {
				if seen[mirrored] {
					continue
				}
				seen[mirrored] = true
				modifiers = append(modifiers, PositionedModifier{Row: mirrored[0], Column: mirrored[1], Modifier: modifier})
			}
		}
	}

	return BoardLayout{
		Name:      StandardLayoutName,
		Rows:      standardSize,
		Columns:   standardSize,
		Modifiers: modifiers,
	}
}

var standardLetters = []struct {
	letter string
	value  int
	count  int
}{
	{"A", 1, 9}, {"B", 3, 2}, {"C", 3, 2}, {"D", 2, 4}, {"E", 1, 12}, {"F", 4, 2},
	{"G", 2, 3}, {"H", 4, 2}, {"I", 1, 9}, {"J", 8, 1}, {"K", 5, 1}, {"L", 1, 4},
	{"M", 3, 2}, {"N", 1, 6}, {"O", 1, 8}, {"P", 3, 2}, {"Q", 10, 1}, {"R", 1, 6},
	{"S", 1, 4}, {"T", 1, 6}, {"U", 1, 4}, {"V", 4, 2}, {"W", 4, 2}, {"X", 8, 1},
	{"Y", 4, 2}, {"Z", 10, 1},
}

// StandardDistribution is the 100-tile English set, two blanks included.
func StandardDistribution() TileMultiset {
	bag := make(TileMultiset, len(standardLetters)+1)
	for _, entry := range standardLetters {
		bag[TileSpec{Letter: entry.letter, Value: entry.value}] = entry.count
	}
	bag[TileSpec{IsBlank: true}] = 2

	return bag
}
