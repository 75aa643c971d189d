package engine

// ValidPlacement reports whether shape s can sit with its top-left corner at
// (x, y). Every occupied cell must be between the walls, above the floor and
// on an empty board cell. Cells above row 0 skip the occupancy test so pieces
// can spawn and rotate partly off the top edge.
func ValidPlacement(b *Board, s Shape, x, y int) bool {
	for sy, row := range s {
		for sx, on := range row {
			if !on {
				continue
			}
			bx := x + sx
			by := y + sy
			if bx < 0 || bx >= Cols || by >= Rows {
				return false
			}
			if by >= 0 && b.IsOccupied(bx, by) {
				return false
			}
		}
	}
	return true
}

func (p Piece) validOn(b *Board) bool {
	return ValidPlacement(b, p.Shape, p.X, p.Y)
}
