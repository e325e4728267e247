package grid

import (
	"fmt"
	"math"
	"math/bits"
)

// Coord is an integer cell position within a level
type Coord struct {
	X, Y, Z int
}

// Level describes one grid of the multigrid hierarchy
type Level struct {
	Depth int     // 0 is the finest level
	Size  int     // Cells per side, N >> Depth
	H     float64 // Cell spacing, h0 * 2^Depth
}

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NewHierarchy builds levels 0..log2(n), finest first. The last level always
// has a single cell.
func NewHierarchy(n int, h0 float64) ([]Level, error) {
	if n < 2 || !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("grid size %d is not a power of two >= 2", n)
	}
	if !(h0 > 0) || math.IsInf(h0, 1) {
		return nil, fmt.Errorf("spacing %g must be positive and finite", h0)
	}
	levels := make([]Level, 1, bits.TrailingZeros(uint(n))+1)
	levels[0] = Level{Size: n, H: h0}
	for levels[len(levels)-1].Size > 1 {
		levels = append(levels, levels[len(levels)-1].Coarser())
	}
	return levels, nil
}

// Index maps a cell position to its row-major offset. Coordinates are not
// bound-checked.
func Index(size, x, y, z int) int {
	return z*size*size + y*size + x
}

// Coords is the inverse of Index
func Coords(size, idx int) (x, y, z int) {
	x = idx % size
	y = (idx / size) % size
	z = idx / (size * size)
	return
}

// CellCount returns Size³
func (l Level) CellCount() int {
	return l.Size * l.Size * l.Size
}

func (l Level) Index(c Coord) int {
	return Index(l.Size, c.X, c.Y, c.Z)
}

func (l Level) Coords(idx int) Coord {
	x, y, z := Coords(l.Size, idx)
	return Coord{X: x, Y: y, Z: z}
}

// InBounds reports whether c lies inside [0, Size)³
func (l Level) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.Size &&
		c.Y >= 0 && c.Y < l.Size &&
		c.Z >= 0 && c.Z < l.Size
}

// Coarser returns the level one coarsening step below l
func (l Level) Coarser() Level {
	return Level{Depth: l.Depth + 1, Size: l.Size / 2, H: l.H * 2}
}

// CellCenter returns the physical position h*(i+0.5) of a cell. The cell may
// lie outside the domain, which is how ghost cells are located.
func (l Level) CellCenter(c Coord) [3]float64 {
	return [3]float64{
		l.H * (float64(c.X) + 0.5),
		l.H * (float64(c.Y) + 0.5),
		l.H * (float64(c.Z) + 0.5),
	}
}

// GhostCenter returns the center of the neighbor of c across face f
func (l Level) GhostCenter(c Coord, f Face) [3]float64 {
	return l.CellCenter(f.Neighbor(c))
}

// Extent returns the physical side length of the domain
func (l Level) Extent() float64 {
	return l.H * float64(l.Size)
}

func (l Level) String() string {
	return fmt.Sprintf("level %d (%d^3, h=%g)", l.Depth, l.Size, l.H)
}
