package kernel

import (
	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

// PointCursor tracks the voxel a kernel is evaluated at, together with its linear index
// into the current slice buffer. The index is only ever moved incrementally, +-1 for an
// x step and +-row width for a y step, and always equals extent.OffsetSlice(x, y).
//
// The cursor reports geometric facts and the parsed outside policy; deciding what value an
// outside neighbor takes is up to the kernel.
type PointCursor struct {
	point  spatialmath.Point3i
	index  int
	extent spatialmath.Extent
	values voxels.BinaryValues
	params ApplicationParameters

	ignoreOutside bool
	outsideOn     bool
}

// NewPointCursor returns a cursor at point whose slice index is index.
func NewPointCursor(
	index int,
	point spatialmath.Point3i,
	extent spatialmath.Extent,
	values voxels.BinaryValues,
	params ApplicationParameters,
) *PointCursor {
	return &PointCursor{
		point:         point,
		index:         index,
		extent:        extent,
		values:        values,
		params:        params,
		ignoreOutside: params.IgnoreOutside(),
		outsideOn:     params.OutsideIsOn(),
	}
}

// Point is the current voxel coordinate.
func (c *PointCursor) Point() spatialmath.Point3i {
	return c.point
}

// Index is the linear index of the current point in its slice buffer.
func (c *PointCursor) Index() int {
	return c.index
}

// Extent is the extent of the volume being traversed.
func (c *PointCursor) Extent() spatialmath.Extent {
	return c.extent
}

// BinaryValues is the encoding of the volume being traversed.
func (c *PointCursor) BinaryValues() voxels.BinaryValues {
	return c.values
}

// Parameters are the application parameters of the traversal.
func (c *PointCursor) Parameters() ApplicationParameters {
	return c.params
}

// UseZ reports whether adjacent z slices participate.
func (c *PointCursor) UseZ() bool {
	return c.params.useZ
}

// IgnoreOutside reports whether outside neighbors are excluded.
func (c *PointCursor) IgnoreOutside() bool {
	return c.ignoreOutside
}

// OutsideIsOn reports whether outside neighbors count as on.
func (c *PointCursor) OutsideIsOn() bool {
	return c.outsideOn
}

// IsOutsideLowUnignored reports whether outside neighbors are considered and treated as off.
func (c *PointCursor) IsOutsideLowUnignored() bool {
	return !c.ignoreOutside && !c.outsideOn
}

// IncrementX moves one voxel along x.
func (c *PointCursor) IncrementX() {
	c.point.X++
	c.index++
}

// DecrementX moves one voxel back along x.
func (c *PointCursor) DecrementX() {
	c.point.X--
	c.index--
}

// IncrementY moves one row along y.
func (c *PointCursor) IncrementY() {
	c.point.Y++
	c.index += c.extent.X
}

// DecrementY moves one row back along y.
func (c *PointCursor) DecrementY() {
	c.point.Y--
	c.index -= c.extent.X
}

// IncrementXTwice moves two voxels along x.
func (c *PointCursor) IncrementXTwice() {
	c.point.X += 2
	c.index += 2
}

// DecrementXTwice moves two voxels back along x.
func (c *PointCursor) DecrementXTwice() {
	c.point.X -= 2
	c.index -= 2
}

// IncrementYTwice moves two rows along y.
func (c *PointCursor) IncrementYTwice() {
	c.point.Y += 2
	c.index += 2 * c.extent.X
}

// DecrementYTwice moves two rows back along y.
func (c *PointCursor) DecrementYTwice() {
	c.point.Y -= 2
	c.index -= 2 * c.extent.X
}

// NonNegativeX reports whether x >= 0.
func (c *PointCursor) NonNegativeX() bool {
	return c.point.X >= 0
}

// NonNegativeY reports whether y >= 0.
func (c *PointCursor) NonNegativeY() bool {
	return c.point.Y >= 0
}

// LessThanMaxX reports whether x < extent.X.
func (c *PointCursor) LessThanMaxX() bool {
	return c.point.X < c.extent.X
}

// LessThanMaxY reports whether y < extent.Y.
func (c *PointCursor) LessThanMaxY() bool {
	return c.point.Y < c.extent.Y
}

// IsBufferOff reports whether buf holds the off value at the current index.
func (c *PointCursor) IsBufferOff(buf []byte) bool {
	return buf[c.index] == c.values.Off
}

// IsBufferOn reports whether buf holds the on value at the current index.
func (c *PointCursor) IsBufferOn(buf []byte) bool {
	return buf[c.index] == c.values.On
}

// resetTo places the cursor at the start of a slice or box region. Used by the
// drivers on each z transition.
func (c *PointCursor) resetTo(point spatialmath.Point3i, index int) {
	c.point = point
	c.index = index
}

// nextRow rewinds span voxels along x and steps one row along y.
func (c *PointCursor) nextRow(span int) {
	c.point.X -= span
	c.index -= span
	c.IncrementY()
}
