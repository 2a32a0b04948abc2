package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// BoundingBox is an axis-aligned region of voxels. Both corners are inclusive.
type BoundingBox struct {
	Min Point3i
	Max Point3i
}

// NewBoundingBox instantiates a box from its two inclusive corners. Max must not be smaller than Min on any axis.
func NewBoundingBox(minCorner, maxCorner Point3i) (BoundingBox, error) {
	box := BoundingBox{Min: minCorner, Max: maxCorner}
	if err := box.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return box, nil
}

// Validate fails if Max is below Min on any axis.
func (b BoundingBox) Validate() error {
	if b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z {
		return errors.Errorf("invalid bounding box, max corner %v is below min corner %v", b.Max, b.Min)
	}
	return nil
}

// NewBoundingBoxFromExtent returns a box starting at corner and spanning extent.
func NewBoundingBoxFromExtent(corner Point3i, extent Extent) BoundingBox {
	return BoundingBox{
		Min: corner,
		Max: Point3i{corner.X + extent.X - 1, corner.Y + extent.Y - 1, corner.Z + extent.Z - 1},
	}
}

// Extent is the size of the box along each axis.
func (b BoundingBox) Extent() Extent {
	return Extent{
		X: b.Max.X - b.Min.X + 1,
		Y: b.Max.Y - b.Min.Y + 1,
		Z: b.Max.Z - b.Min.Z + 1,
	}
}

// Contains reports whether p is inside the box.
func (b BoundingBox) Contains(p Point3i) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether other lies entirely inside this box.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v -> %v]", b.Min, b.Max)
}
