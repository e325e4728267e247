package grid

import (
	"fmt"
)

// BoundaryFace is a cell face whose neighbor lies outside the domain
type BoundaryFace struct {
	Cell  Coord
	Index int // Row-major address of Cell
	Face  Face
}

// FaceConnector enumerates the ghost faces of one level. Ghost values are
// picked once per boundary face and placed into the right-hand side of the
// cell that owns the face.
type FaceConnector struct {
	Level Level

	// Boundary faces grouped by face direction, in row-major cell order
	PickIndices [6][]BoundaryFace
}

// NewFaceConnector builds the boundary face lists for a level
func NewFaceConnector(lvl Level) (*FaceConnector, error) {
	if lvl.Size <= 0 {
		return nil, fmt.Errorf("invalid level size %d", lvl.Size)
	}
	fc := &FaceConnector{Level: lvl}
	fc.BuildIndices()
	return fc, nil
}

// BuildIndices walks every cell and records faces that leave the domain
func (fc *FaceConnector) BuildIndices() {
	size := fc.Level.Size
	for f := range fc.PickIndices {
		fc.PickIndices[f] = make([]BoundaryFace, 0, size*size)
	}
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				cell := Coord{X: x, Y: y, Z: z}
				for _, f := range Faces {
					if fc.Level.InBounds(f.Neighbor(cell)) {
						continue
					}
					fc.PickIndices[f] = append(fc.PickIndices[f], BoundaryFace{
						Cell:  cell,
						Index: Index(size, x, y, z),
						Face:  f,
					})
				}
			}
		}
	}
}

// All returns every boundary face
func (fc *FaceConnector) All() []BoundaryFace {
	total := 0
	for _, list := range fc.PickIndices {
		total += len(list)
	}
	out := make([]BoundaryFace, 0, total)
	for _, list := range fc.PickIndices {
		out = append(out, list...)
	}
	return out
}

// Verify checks index validity and conservation properties
func (fc *FaceConnector) Verify() error {
	var (
		size = fc.Level.Size
		n    = fc.Level.CellCount()
	)
	// Every pick index addresses a real cell whose neighbor is outside
	for f, list := range fc.PickIndices {
		for _, bf := range list {
			if bf.Index < 0 || bf.Index >= n {
				return fmt.Errorf("invalid pick index %d on face %s (max %d)",
					bf.Index, Face(f), n-1)
			}
			if bf.Face != Face(f) {
				return fmt.Errorf("face %s stored under %s", bf.Face, Face(f))
			}
			if fc.Level.InBounds(bf.Face.Neighbor(bf.Cell)) {
				return fmt.Errorf("cell %v face %s has an interior neighbor", bf.Cell, bf.Face)
			}
		}
	}

	// Each side of the cube exposes exactly size² faces
	for f, list := range fc.PickIndices {
		if len(list) != size*size {
			return fmt.Errorf("conservation error: face %s has %d ghost faces, expected %d",
				Face(f), len(list), size*size)
		}
	}
	return nil
}
