package morphology

import (
	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/voxels"
)

// Erosion accepts an on voxel whose whole neighborhood is on. Outside neighbors are
// skipped when ignored, satisfy the kernel when treated as on and reject it when off.
type Erosion struct {
	kernel.Base
	shape shape
}

// NewErosionCross returns a 3-wide erosion over face neighbors.
func NewErosionCross() *Erosion {
	return &Erosion{Base: kernel.NewBase(3), shape: crossShape}
}

// NewErosionBox returns an erosion over the full size-wide square, or cube when z is used.
func NewErosionBox(size int) *Erosion {
	return &Erosion{Base: kernel.NewBase(size), shape: boxShape}
}

// Init returns the state for one traversal.
func (k *Erosion) Init(vox *voxels.BinaryVoxels) (kernel.BinaryState, error) {
	return &erosionState{shape: k.shape, neighborhood: newNeighborhood(k.Size())}, nil
}

type erosionState struct {
	shape shape
	*neighborhood
}

func (s *erosionState) NotifyZChange(slices kernel.BufferRetriever, z int) {
	s.notify(slices)
}

func (s *erosionState) AcceptPoint(point *kernel.PointCursor) bool {
	if !point.IsBufferOn(s.center()) {
		return false
	}
	rejected := s.visit(s.shape, point, func(n neighbor) bool {
		value, counted := resolve(point, n)
		return counted && value == neighborOff
	})
	return !rejected
}

// Dilation accepts an on voxel, or an off voxel with at least one on neighbor. Outside
// neighbors only accept when treated as on.
type Dilation struct {
	kernel.Base
	shape shape
}

// NewDilationCross returns a 3-wide dilation over face neighbors.
func NewDilationCross() *Dilation {
	return &Dilation{Base: kernel.NewBase(3), shape: crossShape}
}

// NewDilationBox returns a dilation over the full size-wide square, or cube when z is used.
func NewDilationBox(size int) *Dilation {
	return &Dilation{Base: kernel.NewBase(size), shape: boxShape}
}

// Init returns the state for one traversal.
func (k *Dilation) Init(vox *voxels.BinaryVoxels) (kernel.BinaryState, error) {
	return &dilationState{shape: k.shape, neighborhood: newNeighborhood(k.Size())}, nil
}

type dilationState struct {
	shape shape
	*neighborhood
}

func (s *dilationState) NotifyZChange(slices kernel.BufferRetriever, z int) {
	s.notify(slices)
}

func (s *dilationState) AcceptPoint(point *kernel.PointCursor) bool {
	if point.IsBufferOn(s.center()) {
		return true
	}
	return s.visit(s.shape, point, func(n neighbor) bool {
		value, counted := resolve(point, n)
		return counted && value == neighborOn
	})
}

// Outline accepts an on voxel with at least one off face neighbor. Outside neighbors
// only count as a boundary when treated as off.
type Outline struct {
	kernel.Base
}

// NewOutline returns a 3-wide outline kernel.
func NewOutline() *Outline {
	return &Outline{Base: kernel.NewBase(3)}
}

// Init returns the state for one traversal.
func (k *Outline) Init(vox *voxels.BinaryVoxels) (kernel.BinaryState, error) {
	return &outlineState{newNeighborhood(k.Size())}, nil
}

type outlineState struct {
	*neighborhood
}

func (s *outlineState) NotifyZChange(slices kernel.BufferRetriever, z int) {
	s.notify(slices)
}

func (s *outlineState) AcceptPoint(point *kernel.PointCursor) bool {
	if !point.IsBufferOn(s.center()) {
		return false
	}
	return s.visitCross(point, func(n neighbor) bool {
		value, counted := resolve(point, n)
		return counted && value == neighborOff
	})
}

// CountOffNeighbors counts, for every on voxel, its off face neighbors. Summed over a
// volume this is the number of exposed faces, a surface area estimate. Outside neighbors
// add one only when treated as off.
type CountOffNeighbors struct {
	kernel.Base
}

// NewCountOffNeighbors returns a 3-wide face counting kernel.
func NewCountOffNeighbors() *CountOffNeighbors {
	return &CountOffNeighbors{Base: kernel.NewBase(3)}
}

// Init returns the state for one traversal.
func (k *CountOffNeighbors) Init(vox *voxels.BinaryVoxels) (kernel.CountState, error) {
	return &countOffState{newNeighborhood(k.Size())}, nil
}

type countOffState struct {
	*neighborhood
}

func (s *countOffState) NotifyZChange(slices kernel.BufferRetriever, z int) {
	s.notify(slices)
}

func (s *countOffState) CountAtPoint(point *kernel.PointCursor) int {
	if !point.IsBufferOn(s.center()) {
		return 0
	}
	count := 0
	s.visitCross(point, func(n neighbor) bool {
		if value, counted := resolve(point, n); counted && value == neighborOff {
			count++
		}
		return false
	})
	return count
}
