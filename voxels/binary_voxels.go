package voxels

import (
	"bytes"

	"github.com/golang/geo/r3"

	"go.viam.com/voxelkernel/spatialmath"
)

// BinaryVoxels is a volume whose voxels are interpreted through a BinaryValues encoding.
type BinaryVoxels struct {
	*Voxels
	values BinaryValues
}

// NewBinary allocates a binary volume with every voxel off.
func NewBinary(extent spatialmath.Extent, values BinaryValues) *BinaryVoxels {
	vox := New(extent)
	if values.Off != 0 {
		vox.Fill(values.Off)
	}
	return &BinaryVoxels{Voxels: vox, values: values}
}

// NewBinaryFromVoxels interprets an existing volume with the given encoding.
func NewBinaryFromVoxels(vox *Voxels, values BinaryValues) *BinaryVoxels {
	return &BinaryVoxels{Voxels: vox, values: values}
}

// BinaryValues is the on/off encoding of the volume.
func (bv *BinaryVoxels) BinaryValues() BinaryValues {
	return bv.values
}

// IsOn reports whether the voxel at p is on.
func (bv *BinaryVoxels) IsOn(p spatialmath.Point3i) bool {
	return bv.values.IsOn(bv.Get(p))
}

// SetOn turns the voxel at p on.
func (bv *BinaryVoxels) SetOn(p spatialmath.Point3i) {
	bv.Set(p, bv.values.On)
}

// SetOff turns the voxel at p off.
func (bv *BinaryVoxels) SetOff(p spatialmath.Point3i) {
	bv.Set(p, bv.values.Off)
}

// CountOn is the number of voxels equal to the on value.
func (bv *BinaryVoxels) CountOn() int {
	count := 0
	for _, s := range bv.slices {
		for _, b := range s {
			if b == bv.values.On {
				count++
			}
		}
	}
	return count
}

// CenterOfGravity is the mean position of the on voxels. It is false when no voxel is on.
func (bv *BinaryVoxels) CenterOfGravity() (r3.Vector, bool) {
	var sum r3.Vector
	count := 0
	for z, s := range bv.slices {
		for i, b := range s {
			if b != bv.values.On {
				continue
			}
			sum = sum.Add(spatialmath.NewPoint3i(i%bv.extent.X, i/bv.extent.X, z).Vector())
			count++
		}
	}
	if count == 0 {
		return r3.Vector{}, false
	}
	return sum.Mul(1 / float64(count)), true
}

// Copy returns a deep copy sharing nothing with the original.
func (bv *BinaryVoxels) Copy() *BinaryVoxels {
	return &BinaryVoxels{Voxels: bv.Voxels.Copy(), values: bv.values}
}

// Equal reports whether both volumes have the same extent, encoding and bytes.
func (bv *BinaryVoxels) Equal(other *BinaryVoxels) bool {
	if bv.extent != other.extent || bv.values != other.values {
		return false
	}
	for z := range bv.slices {
		if !bytes.Equal(bv.slices[z], other.slices[z]) {
			return false
		}
	}
	return true
}
