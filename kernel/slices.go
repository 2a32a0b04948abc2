package kernel

import (
	"go.viam.com/voxelkernel/voxels"
)

// BufferRetriever fetches the slice buffer at a z offset relative to the current focus.
// It returns false when that slice lies outside the volume.
type BufferRetriever interface {
	GetLocal(relativeZ int) ([]byte, bool)
}

// LocalSlices caches the window of slice buffers around a focus z. It holds references
// into the source volume and never copies or owns them.
type LocalSlices struct {
	slices [][]byte
	shift  int
}

// NewLocalSlices builds a window of windowSize slices centered on z. Entries whose
// slice falls outside [0, extent.Z) are left absent.
func NewLocalSlices(z, windowSize int, vox *voxels.Voxels) *LocalSlices {
	shift := (windowSize - 1) / 2
	slices := make([][]byte, windowSize)
	depth := vox.Extent().Z
	for i := range slices {
		zz := z + i - shift
		if zz >= 0 && zz < depth {
			slices[i] = vox.Slice(zz)
		}
	}
	return &LocalSlices{slices: slices, shift: shift}
}

// GetLocal returns the buffer relativeZ slices away from the focus.
func (ls *LocalSlices) GetLocal(relativeZ int) ([]byte, bool) {
	i := relativeZ + ls.shift
	if i < 0 || i >= len(ls.slices) {
		return nil, false
	}
	buf := ls.slices[i]
	return buf, buf != nil
}

// WindowSize is the number of slices in the window.
func (ls *LocalSlices) WindowSize() int {
	return len(ls.slices)
}
