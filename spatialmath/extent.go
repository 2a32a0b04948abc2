// Package spatialmath defines the integer voxel geometry shared by volumes, masks and kernels.
package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// Extent is the size of a voxel volume along each axis. Every dimension is at least 1.
type Extent struct {
	X, Y, Z int
}

// NewExtent returns an extent of the given size, failing if any dimension is less than one.
func NewExtent(x, y, z int) (Extent, error) {
	e := Extent{X: x, Y: y, Z: z}
	if err := e.Validate(); err != nil {
		return Extent{}, err
	}
	return e, nil
}

// Validate fails if any dimension is less than one.
func (e Extent) Validate() error {
	if e.X < 1 || e.Y < 1 || e.Z < 1 {
		return errors.Errorf("invalid extent (%d,%d,%d), each dimension must be at least 1", e.X, e.Y, e.Z)
	}
	return nil
}

// MustExtent is like NewExtent but panics on an invalid size.
func MustExtent(x, y, z int) Extent {
	e, err := NewExtent(x, y, z)
	if err != nil {
		panic(err)
	}
	return e
}

// VolumeXY is the number of voxels in a single z slice.
func (e Extent) VolumeXY() int {
	return e.X * e.Y
}

// Volume is the total number of voxels.
func (e Extent) Volume() int {
	return e.X * e.Y * e.Z
}

// Offset is the row-major linear offset of (x,y,z), x varying fastest.
func (e Extent) Offset(x, y, z int) int {
	return z*(e.X*e.Y) + y*e.X + x
}

// OffsetSlice is the linear offset of (x,y) within a single z slice.
func (e Extent) OffsetSlice(x, y int) int {
	return y*e.X + x
}

// Contains reports whether p lies inside [0, extent) on every axis.
func (e Extent) Contains(p Point3i) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 &&
		p.X < e.X && p.Y < e.Y && p.Z < e.Z
}

// ContainsBox reports whether the box is well formed and both its corners lie inside the extent.
func (e Extent) ContainsBox(box BoundingBox) bool {
	return box.Validate() == nil && e.Contains(box.Min) && e.Contains(box.Max)
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%dx%d", e.X, e.Y, e.Z)
}
