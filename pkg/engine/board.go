package engine

import (
	"fmt"
	"strings"
)

const (
	Rows = 20
	Cols = 10
)

// Grid is a value copy of the settled cells, indexed [row][column] with row 0
// at the top.
type Grid [Rows][Cols]Kind

func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			b.WriteString(g[y][x].String())
		}
		if y < Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Board holds the settled cells of the playfield.
type Board struct {
	cells Grid
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Reset() {
	b.cells = Grid{}
}

// IsOccupied reports whether (x, y) is inside the grid and holds a block.
// Rows above the top edge are always free.
func (b *Board) IsOccupied(x, y int) bool {
	if !inBounds(x, y) {
		return false
	}
	return b.cells[y][x] != KindNone
}

func (b *Board) Cell(x, y int) Kind {
	if !inBounds(x, y) {
		return KindNone
	}
	return b.cells[y][x]
}

func (b *Board) SetCell(x, y int, k Kind) error {
	if !inBounds(x, y) {
		return fmt.Errorf("set cell (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if k != KindNone && !k.Valid() {
		return fmt.Errorf("set cell (%d,%d) to %d: %w", x, y, int(k), ErrInvalidColor)
	}
	b.cells[y][x] = k
	return nil
}

func (b *Board) RowFilled(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for x := 0; x < Cols; x++ {
		if b.cells[y][x] == KindNone {
			return false
		}
	}
	return true
}

// CompletedRows returns the indices of every filled row, top to bottom.
func (b *Board) CompletedRows() []int {
	var rows []int
	for y := 0; y < Rows; y++ {
		if b.RowFilled(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveRows deletes the given rows and pushes the same number of empty rows
// in at the top. Indices refer to the board as it was before the call, so
// non-adjacent rows collapse correctly in a single pass.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	remove := make(map[int]struct{}, len(rows))
	for _, y := range rows {
		if y >= 0 && y < Rows {
			remove[y] = struct{}{}
		}
	}
	write := Rows - 1
	for read := Rows - 1; read >= 0; read-- {
		if _, ok := remove[read]; ok {
			continue
		}
		b.cells[write] = b.cells[read]
		write--
	}
	for ; write >= 0; write-- {
		b.cells[write] = [Cols]Kind{}
	}
}

func (b *Board) Snapshot() Grid {
	return b.cells
}

// Load replaces every cell with g after validating its color identifiers.
func (b *Board) Load(g Grid) error {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			if k := g[y][x]; k != KindNone && !k.Valid() {
				return fmt.Errorf("load cell (%d,%d) = %d: %w", x, y, int(k), ErrInvalidColor)
			}
		}
	}
	b.cells = g
	return nil
}

// ParseGrid builds a Grid from rows of piece letters, '.' meaning empty. Rows
// are aligned to the bottom of the board so short fixtures describe the floor.
func ParseGrid(lines ...string) (Grid, error) {
	var g Grid
	if len(lines) > Rows {
		return g, fmt.Errorf("parse grid: %d rows: %w", len(lines), ErrOutOfBounds)
	}
	offset := Rows - len(lines)
	for i, line := range lines {
		if len(line) > Cols {
			return g, fmt.Errorf("parse grid: row %d has %d columns: %w", i, len(line), ErrOutOfBounds)
		}
		for x, c := range line {
			k, ok := kindByLetter[c]
			if !ok {
				return g, fmt.Errorf("parse grid: row %d column %d %q: %w", i, x, c, ErrInvalidColor)
			}
			g[offset+i][x] = k
		}
	}
	return g, nil
}

var kindByLetter = map[rune]Kind{
	'.': KindNone,
	' ': KindNone,
	'I': KindI,
	'J': KindJ,
	'L': KindL,
	'O': KindO,
	'S': KindS,
	'T': KindT,
	'Z': KindZ,
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}
