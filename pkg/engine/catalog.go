// Package engine implements the falling-block game state: board, pieces,
// collision, rotation with kicks, line clears, scoring and the session loop.
//
// Nothing in this package renders, plays sound or touches the clock. Hosts
// feed it elapsed time and input commands and read back snapshots and events.
package engine

// Kind identifies a piece type. The same value is stored in board cells as the
// color identifier of settled blocks.
type Kind int

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// Kinds lists every playable piece in catalog order.
var Kinds = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "."
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Shape is a square matrix of occupied flags, indexed [row][column].
type Shape [][]bool

var templates = map[Kind][]string{
	KindI: {
		"....",
		"####",
		"....",
		"....",
	},
	KindJ: {
		"#..",
		"###",
		"...",
	},
	KindL: {
		"..#",
		"###",
		"...",
	},
	KindO: {
		"##",
		"##",
	},
	KindS: {
		".##",
		"##.",
		"...",
	},
	KindT: {
		".#.",
		"###",
		"...",
	},
	KindZ: {
		"##.",
		".##",
		"...",
	},
}

// Template returns a fresh copy of the spawn orientation of k. It returns nil
// for KindNone and unknown kinds.
func Template(k Kind) Shape {
	rows, ok := templates[k]
	if !ok {
		return nil
	}
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, c := range row {
			shape[y][x] = c == '#'
		}
	}
	return shape
}

// Size returns N for an N×N shape.
func (s Shape) Size() int {
	return len(s)
}

func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y := range s {
		out[y] = make([]bool, len(s[y]))
		copy(out[y], s[y])
	}
	return out
}

func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

func (s Shape) String() string {
	b := make([]byte, 0, len(s)*(len(s)+1))
	for y, row := range s {
		if y > 0 {
			b = append(b, '/')
		}
		for _, on := range row {
			if on {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}
