package kernel

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/voxels"
)

// AndKernel accepts a voxel only when both of its children do.
type AndKernel struct {
	Base
	first  BinaryKernel
	second BinaryKernel
}

// NewAndKernel combines two kernels of equal size.
func NewAndKernel(first, second BinaryKernel) (*AndKernel, error) {
	if first.Size() != second.Size() {
		return nil, errors.Errorf("cannot combine kernels of different sizes (%d and %d)", first.Size(), second.Size())
	}
	return &AndKernel{Base: NewBase(first.Size()), first: first, second: second}, nil
}

// Init initializes both children.
func (k *AndKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	first, err := k.first.Init(vox)
	if err != nil {
		return nil, errors.Wrap(err, "first kernel")
	}
	second, err := k.second.Init(vox)
	if err != nil {
		return nil, errors.Wrap(err, "second kernel")
	}
	return &andState{first: first, second: second}, nil
}

type andState struct {
	first  BinaryState
	second BinaryState
}

// NotifyZChange always reaches both children, since either may cache per-slice data.
func (s *andState) NotifyZChange(slices BufferRetriever, z int) {
	s.first.NotifyZChange(slices, z)
	s.second.NotifyZChange(slices, z)
}

// AcceptPoint only consults the second child when the first accepts.
func (s *andState) AcceptPoint(point *PointCursor) bool {
	return s.first.AcceptPoint(point) && s.second.AcceptPoint(point)
}
