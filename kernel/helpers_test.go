package kernel

import (
	"math/rand"

	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

func makeVolume(extent spatialmath.Extent, on ...spatialmath.Point3i) *voxels.BinaryVoxels {
	vox := voxels.NewBinary(extent, voxels.DefaultBinaryValues)
	for _, p := range on {
		vox.SetOn(p)
	}
	return vox
}

func randomVolume(seed int64, extent spatialmath.Extent, density float64) *voxels.BinaryVoxels {
	rnd := rand.New(rand.NewSource(seed))
	vox := voxels.NewBinary(extent, voxels.DefaultBinaryValues)
	for z := 0; z < extent.Z; z++ {
		s := vox.Slice(z)
		for i := range s {
			if rnd.Float64() < density {
				s[i] = voxels.DefaultBinaryValues.On
			}
		}
	}
	return vox
}

// selfOnKernel accepts when the voxel under the cursor is on.
type selfOnKernel struct {
	Base
}

func newSelfOnKernel() *selfOnKernel {
	return &selfOnKernel{NewBase(3)}
}

func (k *selfOnKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	return &selfOnState{}, nil
}

type selfOnState struct {
	slice []byte
}

func (s *selfOnState) NotifyZChange(slices BufferRetriever, z int) {
	s.slice, _ = slices.GetLocal(0)
}

func (s *selfOnState) AcceptPoint(point *PointCursor) bool {
	return point.IsBufferOn(s.slice)
}

// leftOnKernel accepts when the neighbor at x-1 is on, applying the outside policy at the edge.
type leftOnKernel struct {
	Base
}

func (k *leftOnKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	return &leftOnState{}, nil
}

type leftOnState struct {
	slice []byte
}

func (s *leftOnState) NotifyZChange(slices BufferRetriever, z int) {
	s.slice, _ = slices.GetLocal(0)
}

func (s *leftOnState) AcceptPoint(point *PointCursor) bool {
	point.DecrementX()
	defer point.IncrementX()
	if !point.NonNegativeX() {
		return !point.IgnoreOutside() && point.OutsideIsOn()
	}
	return point.IsBufferOn(s.slice)
}

// belowOnKernel accepts when the voxel in the previous z slice is on.
type belowOnKernel struct {
	Base
}

func (k *belowOnKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	return &belowOnState{}, nil
}

type belowOnState struct {
	below []byte
	ok    bool
}

func (s *belowOnState) NotifyZChange(slices BufferRetriever, z int) {
	s.below, s.ok = slices.GetLocal(-1)
}

func (s *belowOnState) AcceptPoint(point *PointCursor) bool {
	if !s.ok {
		return point.UseZ() && !point.IgnoreOutside() && point.OutsideIsOn()
	}
	return point.IsBufferOn(s.below)
}

// spyKernel returns a fixed answer and counts how it is used.
type spyKernel struct {
	Base
	accept   bool
	inits    int
	notifies int
	calls    int
	initErr  error
}

func newSpyKernel(accept bool) *spyKernel {
	return &spyKernel{Base: NewBase(3), accept: accept}
}

func (k *spyKernel) Init(vox *voxels.BinaryVoxels) (BinaryState, error) {
	k.inits++
	if k.initErr != nil {
		return nil, k.initErr
	}
	return &spyState{k}, nil
}

type spyState struct {
	k *spyKernel
}

func (s *spyState) NotifyZChange(slices BufferRetriever, z int) {
	s.k.notifies++
}

func (s *spyState) AcceptPoint(point *PointCursor) bool {
	s.k.calls++
	return s.k.accept
}
