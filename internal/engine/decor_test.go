package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

func TestPlaceCampfires(t *testing.T) {
	cells := []GridCell{
		{Col: 0, Row: 0, Level: 1},
		{Col: 0, Row: 1, Level: 4},
		{Col: 0, Row: 2, Level: 0},
		{Col: 1, Row: 0, Level: 3},
		{Col: 1, Row: 1, Level: 4},
		{Col: 1, Row: 2, Level: 2},
		{Col: 2, Row: 0, Level: 4},
	}

	t.Run("Top tier preferred, recent first", func(t *testing.T) {
		fires := PlaceCampfires(cells, 2)
		require.Len(t, fires, 2)
		assert.Equal(t, Decoration{Col: 2, Row: 0, Point: CellCenter(2, 0)}, fires[0])
		assert.Equal(t, Decoration{Col: 1, Row: 1, Point: CellCenter(1, 1)}, fires[1])
	})

	t.Run("Lower tiers backfill", func(t *testing.T) {
		fires := PlaceCampfires(cells, 5)
		require.Len(t, fires, 5)
		// Three level-4 sites, then the level-3 and level-2 cells.
		assert.Equal(t, [2]int{1, 0}, [2]int{fires[3].Col, fires[3].Row})
		assert.Equal(t, [2]int{1, 2}, [2]int{fires[4].Col, fires[4].Row})
	})

	t.Run("Level-0 cells never qualify", func(t *testing.T) {
		fires := PlaceCampfires(cells, 10)
		assert.Len(t, fires, 6, "every positive-level cell, none of the zeros")
		for _, f := range fires {
			assert.NotEqual(t, [2]int{0, 2}, [2]int{f.Col, f.Row})
		}
	})

	t.Run("No candidates", func(t *testing.T) {
		quiet := []GridCell{{Col: 0, Row: 0, Level: 0}}
		assert.Empty(t, PlaceCampfires(quiet, config.MaxCampfires))
	})

	t.Run("Zero budget", func(t *testing.T) {
		assert.Empty(t, PlaceCampfires(cells, 0))
	})
}

func TestPlaceCampfires_DedupesPositions(t *testing.T) {
	// The same grid slot appearing twice (which a malformed feed could
	// produce) must host at most one fire.
	cells := []GridCell{
		{Col: 3, Row: 2, Level: 4},
		{Col: 3, Row: 2, Level: 4},
	}
	fires := PlaceCampfires(cells, 4)
	assert.Len(t, fires, 1)
}

func TestTentSite(t *testing.T) {
	trail := []TrailPoint{{X: 10, Y: 10}, {X: 25, Y: 10}, {X: 25, Y: 25}}
	assert.Equal(t, TrailPoint{X: 25, Y: 25}, TentSite(trail))

	assert.Equal(t, CellCenter(0, 0), TentSite(nil), "the guard pins an empty trail to the first cell")
}
