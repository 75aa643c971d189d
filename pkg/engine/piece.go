package engine

import "fmt"

type Point struct {
	X int
	Y int
}

// Piece is a shape placed on the board. X and Y locate the top-left corner of
// the shape matrix and may be negative while the piece enters from above.
type Piece struct {
	Kind  Kind
	Shape Shape
	X     int
	Y     int
}

// Spawn returns k in its template orientation, centered at the top row.
func Spawn(k Kind) Piece {
	shape := Template(k)
	n := shape.Size()
	return Piece{
		Kind:  k,
		Shape: shape,
		X:     Cols/2 - (n+1)/2,
		Y:     0,
	}
}

// Rotate returns the shape turned 90 degrees clockwise. The input is not
// modified.
func Rotate(s Shape) Shape {
	n := s.Size()
	out := make(Shape, n)
	for i := range out {
		out[i] = make([]bool, n)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[x][n-1-y] = s[y][x]
		}
	}
	return out
}

func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells returns the board coordinates covered by the piece.
func (p Piece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for sy, row := range p.Shape {
		for sx, on := range row {
			if on {
				cells = append(cells, Point{X: p.X + sx, Y: p.Y + sy})
			}
		}
	}
	return cells
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@(%d,%d) %s", p.Kind, p.X, p.Y, p.Shape)
}
