package voxels

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/spatialmath"
)

// Voxels is a row-major byte volume stored as one contiguous buffer per z slice.
type Voxels struct {
	extent spatialmath.Extent
	slices [][]byte
}

// New allocates a zeroed volume of the given extent. It panics if the extent was not built
// with spatialmath.NewExtent and has a dimension below one.
func New(extent spatialmath.Extent) *Voxels {
	if err := extent.Validate(); err != nil {
		panic(err)
	}
	slices := make([][]byte, extent.Z)
	for z := range slices {
		slices[z] = make([]byte, extent.VolumeXY())
	}
	return &Voxels{extent: extent, slices: slices}
}

// NewFromSlices wraps existing slice buffers without copying them.
func NewFromSlices(extent spatialmath.Extent, slices [][]byte) (*Voxels, error) {
	if err := extent.Validate(); err != nil {
		return nil, err
	}
	if len(slices) != extent.Z {
		return nil, errors.Errorf("expected %d z slices for extent %v but got %d", extent.Z, extent, len(slices))
	}
	for z, s := range slices {
		if len(s) != extent.VolumeXY() {
			return nil, errors.Errorf("slice %d has %d voxels, expected %d for extent %v", z, len(s), extent.VolumeXY(), extent)
		}
	}
	return &Voxels{extent: extent, slices: slices}, nil
}

// NewFromBytes splits a single row-major buffer of the whole volume into z slices. The buffer is not copied.
func NewFromBytes(extent spatialmath.Extent, data []byte) (*Voxels, error) {
	if err := extent.Validate(); err != nil {
		return nil, err
	}
	if len(data) != extent.Volume() {
		return nil, errors.Errorf("expected %d bytes for extent %v but got %d", extent.Volume(), extent, len(data))
	}
	slices := make([][]byte, extent.Z)
	step := extent.VolumeXY()
	for z := range slices {
		slices[z] = data[z*step : (z+1)*step : (z+1)*step]
	}
	return &Voxels{extent: extent, slices: slices}, nil
}

// Extent is the size of the volume.
func (v *Voxels) Extent() spatialmath.Extent {
	return v.extent
}

// Slice returns the buffer of slice z. The buffer is shared, not copied.
func (v *Voxels) Slice(z int) []byte {
	return v.slices[z]
}

// Get returns the voxel at p.
func (v *Voxels) Get(p spatialmath.Point3i) byte {
	return v.slices[p.Z][v.extent.OffsetSlice(p.X, p.Y)]
}

// Set writes the voxel at p.
func (v *Voxels) Set(p spatialmath.Point3i, value byte) {
	v.slices[p.Z][v.extent.OffsetSlice(p.X, p.Y)] = value
}

// Fill sets every voxel to value.
func (v *Voxels) Fill(value byte) {
	for _, s := range v.slices {
		for i := range s {
			s[i] = value
		}
	}
}

// Copy returns a deep copy of the volume.
func (v *Voxels) Copy() *Voxels {
	out := &Voxels{extent: v.extent, slices: make([][]byte, len(v.slices))}
	for z, s := range v.slices {
		out.slices[z] = append([]byte(nil), s...)
	}
	return out
}

// Bytes returns the whole volume as one freshly allocated row-major buffer.
func (v *Voxels) Bytes() []byte {
	out := make([]byte, 0, v.extent.Volume())
	for _, s := range v.slices {
		out = append(out, s...)
	}
	return out
}
