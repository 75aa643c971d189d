package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placementOracle answers the same question as ValidPlacement from the
// piece's absolute cells.
func placementOracle(b *Board, p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Cols || c.Y >= Rows {
			return false
		}
		if c.Y >= 0 && b.Cell(c.X, c.Y) != KindNone {
			return false
		}
	}
	return true
}

func TestValidPlacementExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, density := range []float64{0, 0.15, 0.5} {
		b := NewBoard()
		for y := 0; y < Rows; y++ {
			for x := 0; x < Cols; x++ {
				if rng.Float64() < density {
					require.NoError(t, b.SetCell(x, y, Kinds[rng.Intn(len(Kinds))]))
				}
			}
		}

		for _, k := range Kinds {
			shape := Template(k)
			for r := 0; r < 4; r++ {
				for y := -5; y <= Rows+1; y++ {
					for x := -5; x <= Cols+1; x++ {
						p := Piece{Kind: k, Shape: shape, X: x, Y: y}
						want := placementOracle(b, p)
						if got := ValidPlacement(b, shape, x, y); got != want {
							t.Fatalf("density %.2f %s at (%d,%d): got %v want %v\n%s", density, shape, x, y, got, want, b.Snapshot())
						}
						if want {
							for _, c := range p.Cells() {
								assert.True(t, c.X >= 0 && c.X < Cols && c.Y < Rows)
								assert.False(t, b.IsOccupied(c.X, c.Y))
							}
						}
					}
				}
				shape = Rotate(shape)
			}
		}
	}
}

func TestValidPlacementAboveTop(t *testing.T) {
	b := NewBoard()
	g := Grid{}
	g[0] = fullRow(KindZ)
	require.NoError(t, b.Load(g))

	shape := Template(KindI)
	assert.True(t, ValidPlacement(b, shape, 3, -2), "cells above row 0 skip the occupancy test")
	assert.False(t, ValidPlacement(b, shape, 3, -1))
	assert.False(t, ValidPlacement(b, shape, -1, -2), "walls still apply above the top")
}

func TestValidPlacementFloorAndWalls(t *testing.T) {
	b := NewBoard()
	shape := Template(KindO)

	assert.True(t, ValidPlacement(b, shape, 0, Rows-2))
	assert.False(t, ValidPlacement(b, shape, 0, Rows-1))
	assert.True(t, ValidPlacement(b, shape, Cols-2, 0))
	assert.False(t, ValidPlacement(b, shape, Cols-1, 0))
	assert.False(t, ValidPlacement(b, shape, -1, 0))
}
