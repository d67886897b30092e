package entity

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrSampleTooLarge = errors.New("sample size exceeds tile count")

// TileSpec identifies a kind of tile. Blank tiles in racks and bags carry no
// letter; a blank placed on the board carries the letter it stands for.
type TileSpec struct {
	Letter  string `json:"letter"`
	Value   int    `json:"value"`
	IsBlank bool   `json:"is_blank"`
}

// RackKey is the identity of the tile as it sits on a rack or in the bag.
func (that TileSpec) RackKey() TileSpec {
	if that.IsBlank {
		return TileSpec{Value: that.Value, IsBlank: true}
	}

	return that
}

func (that TileSpec) String() string {
	if that.IsBlank {
		return fmt.Sprintf("(%s)", that.Letter)
	}

	return that.Letter
}

// TileCount is the serialisable form of one multiset entry.
type TileCount struct {
	Tile  TileSpec `json:"tile"`
	Count int      `json:"count"`
}

// Random is the source used to draw tiles. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // tile draws need uniformity, not secrecy
}

// DefaultRandom is safe for concurrent use.
var DefaultRandom Random = globalRandom{}

// TileMultiset counts tiles by kind. Absent keys count zero and stored counts are always positive.
// Operations return new multisets and never mutate their operands.
type TileMultiset map[TileSpec]int

func NewTileMultiset(counts ...TileCount) TileMultiset {
	result := make(TileMultiset, len(counts))
	for _, tileCount := range counts {
		if tileCount.Count > 0 {
			result[tileCount.Tile] += tileCount.Count
		}
	}

	return result
}

// TilesOf builds a multiset with one instance per given tile.
func TilesOf(tiles ...TileSpec) TileMultiset {
	result := make(TileMultiset, len(tiles))
	for _, tile := range tiles {
		result[tile]++
	}

	return result
}

func (that TileMultiset) Clone() TileMultiset {
	result := make(TileMultiset, len(that))
	for tile, count := range that {
		if count > 0 {
			result[tile] = count
		}
	}

	return result
}

func (that TileMultiset) Union(other TileMultiset) TileMultiset {
	result := that.Clone()
	for tile, count := range other {
		if count > 0 {
			result[tile] += count
		}
	}

	return result
}

// Difference removes other from that, saturating every count at zero.
func (that TileMultiset) Difference(other TileMultiset) TileMultiset {
	result := make(TileMultiset, len(that))
	for tile, count := range that {
		if remaining := count - other[tile]; remaining > 0 {
			result[tile] = remaining
		}
	}

	return result
}

// Contains reports whether every tile in other is available in that.
func (that TileMultiset) Contains(other TileMultiset) bool {
	for tile, count := range other {
		if that[tile] < count {
			return false
		}
	}

	return true
}

func (that TileMultiset) TotalCount() int {
	total := 0
	for _, count := range that {
		total += count
	}

	return total
}

// TotalValue sums value times count over every tile.
func (that TileMultiset) TotalValue() int {
	total := 0
	for tile, count := range that {
		total += tile.Value * count
	}

	return total
}

func (that TileMultiset) IsEmpty() bool {
	return that.TotalCount() == 0
}

func (that TileMultiset) Equal(other TileMultiset) bool {
	return that.Contains(other) && other.Contains(that)
}

// Counts lists the entries in a stable order: letters first, blanks last.
func (that TileMultiset) Counts() []TileCount {
	result := make([]TileCount, 0, len(that))
	for tile, count := range that {
		if count > 0 {
			result = append(result, TileCount{Tile: tile, Count: count})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return tileLess(result[i].Tile, result[j].Tile)
	})

	return result
}

// Sample draws n tile instances uniformly without replacement. Every instance
// is an independent draw opportunity, so a kind with count 5 is five times as
// likely as a kind with count 1.
func (that TileMultiset) Sample(rnd Random, n int) (TileMultiset, error) {
	total := that.TotalCount()
	if n < 0 || n > total {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrSampleTooLarge, n, total)
	}

	instances := make([]TileSpec, 0, total)
	for _, tileCount := range that.Counts() {
		for range tileCount.Count {
			instances = append(instances, tileCount.Tile)
		}
	}

	// partial Fisher-Yates: the first n slots end up a uniform sample
	drawn := make(TileMultiset, n)
	for i := range n {
		j := i + rnd.Intn(len(instances)-i)
		instances[i], instances[j] = instances[j], instances[i]
		drawn[instances[i]]++
	}

	return drawn, nil
}

func tileLess(a, b TileSpec) bool {
	if a.IsBlank != b.IsBlank {
		return !a.IsBlank
	}

	if a.Letter != b.Letter {
		return a.Letter < b.Letter
	}

	return a.Value < b.Value
}
