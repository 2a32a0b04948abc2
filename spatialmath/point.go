package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Point3i is an integer voxel coordinate.
type Point3i struct {
	X, Y, Z int
}

// NewPoint3i returns the point (x,y,z).
func NewPoint3i(x, y, z int) Point3i {
	return Point3i{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two points.
func (p Point3i) Add(o Point3i) Point3i {
	return Point3i{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns the component-wise difference of two points.
func (p Point3i) Sub(o Point3i) Point3i {
	return Point3i{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Vector converts the point to a floating point vector.
func (p Point3i) Vector() r3.Vector {
	return r3.Vector{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p Point3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}
