package engine

// KickOffsets returns the horizontal offsets tried, in order, when rotating
// an N×N shape. Only the four-wide piece gets the two-column kicks.
func KickOffsets(n int) []int {
	if n > 3 {
		return []int{0, 1, -1, 2, -2}
	}
	return []int{0, 1, -1}
}

// KickObserver is told about every offset the resolver tests and whether the
// placement it produced was valid.
type KickObserver func(offset int, valid bool)

// ResolveRotation rotates p clockwise and shifts it by the first kick offset
// that yields a valid placement. When no offset works it returns p unchanged
// and false.
func ResolveRotation(b *Board, p Piece) (Piece, int, bool) {
	return ResolveRotationTrace(b, p, nil)
}

func ResolveRotationTrace(b *Board, p Piece, observe KickObserver) (Piece, int, bool) {
	rotated := Rotate(p.Shape)
	for _, dx := range KickOffsets(rotated.Size()) {
		valid := ValidPlacement(b, rotated, p.X+dx, p.Y)
		if observe != nil {
			observe(dx, valid)
		}
		if valid {
			return Piece{Kind: p.Kind, Shape: rotated, X: p.X + dx, Y: p.Y}, dx, true
		}
	}
	return p, 0, false
}
