// Package kernel slides small odd-sized structuring elements across binary voxel volumes.
//
// A kernel is an immutable description that may be shared between goroutines. Each
// traversal calls Init to obtain a state value owned by that traversal; the state is
// notified before every z slice and then queried once per voxel. Evaluation must be
// free of side effects beyond reading the cursor and the cached slices, and must leave
// the cursor at the point it was handed. Composite kernels evaluate their children in
// a fixed order, left to right.
package kernel

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/voxels"
)

// Kernel is a square structuring element with an odd side length.
type Kernel interface {
	Size() int
}

// BinaryKernel decides a boolean per voxel.
type BinaryKernel interface {
	Kernel
	Init(vox *voxels.BinaryVoxels) (BinaryState, error)
}

// BinaryState is the per-traversal state of a BinaryKernel.
type BinaryState interface {
	// NotifyZChange is called exactly once per slice before any voxel in slice z is evaluated.
	NotifyZChange(slices BufferRetriever, z int)
	// AcceptPoint evaluates the kernel at the cursor.
	AcceptPoint(point *PointCursor) bool
}

// CountKernel contributes an integer per voxel.
type CountKernel interface {
	Kernel
	Init(vox *voxels.BinaryVoxels) (CountState, error)
}

// CountState is the per-traversal state of a CountKernel.
type CountState interface {
	// NotifyZChange is called exactly once per slice before any voxel in slice z is evaluated.
	NotifyZChange(slices BufferRetriever, z int)
	// CountAtPoint evaluates the kernel at the cursor.
	CountAtPoint(point *PointCursor) int
}

// CheckSize panics if size is not a positive odd number. An even kernel is a programming
// error, not a condition callers can recover from.
func CheckSize(size int) {
	if size < 1 || size%2 == 0 {
		panic(errors.Errorf("kernel size must be a positive odd number but got %d", size))
	}
}

// Base carries the fixed size of a kernel. Embed it to implement Size.
type Base struct {
	size int
}

// NewBase returns a Base of the given size, panicking if the size is even.
func NewBase(size int) Base {
	CheckSize(size)
	return Base{size: size}
}

// Size is the side length of the kernel.
func (b Base) Size() int {
	return b.size
}

// CountAccepted adapts a binary kernel into a count kernel contributing 1 for every accepted voxel.
func CountAccepted(k BinaryKernel) CountKernel {
	return &acceptedCountKernel{Base: NewBase(k.Size()), inner: k}
}

type acceptedCountKernel struct {
	Base
	inner BinaryKernel
}

func (k *acceptedCountKernel) Init(vox *voxels.BinaryVoxels) (CountState, error) {
	state, err := k.inner.Init(vox)
	if err != nil {
		return nil, err
	}
	return acceptedCountState{state}, nil
}

type acceptedCountState struct {
	inner BinaryState
}

func (s acceptedCountState) NotifyZChange(slices BufferRetriever, z int) {
	s.inner.NotifyZChange(slices, z)
}

func (s acceptedCountState) CountAtPoint(point *PointCursor) int {
	if s.inner.AcceptPoint(point) {
		return 1
	}
	return 0
}
