package kernel

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/voxels"
)

// ConditionalKernel gates another kernel on an intensity volume. Voxels whose intensity is
// below minValue are rejected without evaluating the wrapped kernel.
type ConditionalKernel struct {
	Base
	inner     BinaryKernel
	minValue  int
	intensity *voxels.Voxels
}

// NewConditionalKernel wraps inner so that it is only evaluated where intensity >= minValue.
func NewConditionalKernel(inner BinaryKernel, minValue int, intensity *voxels.Voxels) *ConditionalKernel {
	return &ConditionalKernel{
		Base:      NewBase(inner.Size()),
		inner:     inner,
		minValue:  minValue,
		intensity: intensity,
	}
}

// MinValue is the intensity threshold.
func (k *ConditionalKernel) MinValue() int {
	return k.minValue
}

// Init fails if the intensity volume does not have the same extent as vox.
func (k *ConditionalKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	if k.intensity == nil {
		return nil, errors.New("conditional kernel has no intensity volume")
	}
	if k.intensity.Extent() != vox.Extent() {
		return nil, errors.Errorf("intensity volume extent %v does not match volume extent %v",
			k.intensity.Extent(), vox.Extent())
	}
	inner, err := k.inner.Init(vox)
	if err != nil {
		return nil, err
	}
	return &conditionalState{inner: inner, minValue: k.minValue, intensity: k.intensity}, nil
}

type conditionalState struct {
	inner     BinaryState
	minValue  int
	intensity *voxels.Voxels
	slice     []byte
}

func (s *conditionalState) NotifyZChange(slices BufferRetriever, z int) {
	s.inner.NotifyZChange(slices, z)
	s.slice = s.intensity.Slice(z)
}

func (s *conditionalState) AcceptPoint(point *PointCursor) bool {
	if int(s.slice[point.Index()]) < s.minValue {
		return false
	}
	return s.inner.AcceptPoint(point)
}
