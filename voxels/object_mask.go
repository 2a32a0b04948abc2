package voxels

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/spatialmath"
)

// ObjectMask is a binary region positioned inside a larger volume. Its voxels are stored
// locally to its bounding box, so (0,0,0) in the local buffers is box.Min in the volume.
type ObjectMask struct {
	box    spatialmath.BoundingBox
	voxels *BinaryVoxels
}

// NewObjectMask allocates an all-off mask covering box. It panics on an inverted box.
func NewObjectMask(box spatialmath.BoundingBox, values BinaryValues) *ObjectMask {
	if err := box.Validate(); err != nil {
		panic(err)
	}
	return &ObjectMask{box: box, voxels: NewBinary(box.Extent(), values)}
}

// NewObjectMaskFromVoxels wraps existing local voxels. Their extent must match the box.
func NewObjectMaskFromVoxels(box spatialmath.BoundingBox, local *BinaryVoxels) (*ObjectMask, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if local.Extent() != box.Extent() {
		return nil, errors.Errorf("mask voxels have extent %v but bounding box %v has extent %v",
			local.Extent(), box, box.Extent())
	}
	return &ObjectMask{box: box, voxels: local}, nil
}

// BoundingBox is where the mask sits in the enclosing volume.
func (om *ObjectMask) BoundingBox() spatialmath.BoundingBox {
	return om.box
}

// BinaryValues is the on/off encoding of the mask.
func (om *ObjectMask) BinaryValues() BinaryValues {
	return om.voxels.BinaryValues()
}

// Voxels returns the locally-indexed mask voxels.
func (om *ObjectMask) Voxels() *BinaryVoxels {
	return om.voxels
}

// SliceLocal returns the mask buffer for local slice zLocal (0 is box.Min.Z).
func (om *ObjectMask) SliceLocal(zLocal int) []byte {
	return om.voxels.Slice(zLocal)
}

// Contains reports whether the global point is inside the box and on in the mask.
func (om *ObjectMask) Contains(p spatialmath.Point3i) bool {
	if !om.box.Contains(p) {
		return false
	}
	return om.voxels.IsOn(p.Sub(om.box.Min))
}

// SetOnGlobal turns on the mask voxel at the global point p, which must lie in the box.
func (om *ObjectMask) SetOnGlobal(p spatialmath.Point3i) {
	om.voxels.SetOn(p.Sub(om.box.Min))
}

// CountOn is the number of on voxels in the mask.
func (om *ObjectMask) CountOn() int {
	return om.voxels.CountOn()
}

// CenterOfGravity is the mean global position of the on voxels of the mask. It is false when
// the mask is empty.
func (om *ObjectMask) CenterOfGravity() (r3.Vector, bool) {
	local, ok := om.voxels.CenterOfGravity()
	if !ok {
		return r3.Vector{}, false
	}
	return local.Add(om.box.Min.Vector()), true
}
