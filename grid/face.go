package grid

// Face identifies one of the six faces of a cell
type Face uint8

const (
	XMinus Face = iota
	XPlus
	YMinus
	YPlus
	ZMinus
	ZPlus
)

// Faces lists every face in axis-major order
var Faces = [6]Face{XMinus, XPlus, YMinus, YPlus, ZMinus, ZPlus}

// Axis returns 0, 1 or 2 for x, y, z
func (f Face) Axis() int {
	return int(f) / 2
}

// Shift returns -1 for the minus face and +1 for the plus face
func (f Face) Shift() int {
	if f%2 == 0 {
		return -1
	}
	return 1
}

// Opposite returns the face on the other side of the cell
func (f Face) Opposite() Face {
	return f ^ 1
}

// Neighbor returns the cell across face f
func (f Face) Neighbor(c Coord) Coord {
	switch f.Axis() {
	case 0:
		c.X += f.Shift()
	case 1:
		c.Y += f.Shift()
	default:
		c.Z += f.Shift()
	}
	return c
}

func (f Face) String() string {
	switch f {
	case XMinus:
		return "-x"
	case XPlus:
		return "+x"
	case YMinus:
		return "-y"
	case YPlus:
		return "+y"
	case ZMinus:
		return "-z"
	case ZPlus:
		return "+z"
	default:
		return "invalid"
	}
}
