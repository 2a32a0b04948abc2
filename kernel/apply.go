package kernel

import (
	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

// walkBox visits every voxel of box in z, y, x order. For each slice it builds a fresh
// slice window and hands it to notify, then calls visit with the cursor and the index of
// the voxel local to the box slice. It stops and returns true as soon as visit does.
func walkBox(
	vox *voxels.BinaryVoxels,
	box spatialmath.BoundingBox,
	params ApplicationParameters,
	kernelSize int,
	notify func(slices BufferRetriever, z int),
	visit func(point *PointCursor, localIndex int) bool,
) bool {
	extent := vox.Extent()
	windowSize := params.WindowSize(kernelSize)
	span := box.Max.X - box.Min.X + 1
	rowStart := extent.OffsetSlice(box.Min.X, box.Min.Y)

	cursor := NewPointCursor(rowStart, box.Min, extent, vox.BinaryValues(), params)
	for z := box.Min.Z; z <= box.Max.Z; z++ {
		notify(NewLocalSlices(z, windowSize, vox.Voxels), z)
		cursor.resetTo(spatialmath.Point3i{X: box.Min.X, Y: box.Min.Y, Z: z}, rowStart)

		localIndex := 0
		for y := box.Min.Y; y <= box.Max.Y; y++ {
			for x := box.Min.X; x <= box.Max.X; x++ {
				if visit(cursor, localIndex) {
					return true
				}
				localIndex++
				cursor.IncrementX()
			}
			cursor.nextRow(span)
		}
	}
	return false
}

func wholeBox(extent spatialmath.Extent) spatialmath.BoundingBox {
	return spatialmath.NewBoundingBoxFromExtent(spatialmath.Point3i{}, extent)
}

// Apply evaluates k at every voxel and returns a new volume, with the same extent and
// encoding as vox, that is on wherever k accepted.
func Apply(k BinaryKernel, vox *voxels.BinaryVoxels, params ApplicationParameters) (*voxels.BinaryVoxels, error) {
	state, err := k.Init(vox)
	if err != nil {
		return nil, err
	}
	values := vox.BinaryValues()
	out := voxels.NewBinary(vox.Extent(), values)

	var outSlice []byte
	walkBox(vox, wholeBox(vox.Extent()), params, k.Size(),
		func(slices BufferRetriever, z int) {
			state.NotifyZChange(slices, z)
			outSlice = out.Slice(z)
		},
		func(point *PointCursor, _ int) bool {
			outSlice[point.Index()] = values.Encode(state.AcceptPoint(point))
			return false
		},
	)
	return out, nil
}

// ApplyForCount sums the contribution of k over the whole volume.
func ApplyForCount(k CountKernel, vox *voxels.BinaryVoxels, params ApplicationParameters) (int, error) {
	return ApplyForCountInBox(k, vox, wholeBox(vox.Extent()), params)
}

// ApplyForCountInBox sums the contribution of k over box, which must lie inside the volume.
func ApplyForCountInBox(
	k CountKernel,
	vox *voxels.BinaryVoxels,
	box spatialmath.BoundingBox,
	params ApplicationParameters,
) (int, error) {
	if err := checkBoxInside(box, vox.Extent()); err != nil {
		return 0, err
	}
	state, err := k.Init(vox)
	if err != nil {
		return 0, err
	}

	count := 0
	walkBox(vox, box, params, k.Size(),
		state.NotifyZChange,
		func(point *PointCursor, _ int) bool {
			count += state.CountAtPoint(point)
			return false
		},
	)
	return count, nil
}

// ApplyUntilPositive reports whether any voxel of box has a positive count. It stops at
// the first such voxel.
func ApplyUntilPositive(
	k CountKernel,
	vox *voxels.BinaryVoxels,
	box spatialmath.BoundingBox,
	params ApplicationParameters,
) (bool, error) {
	if err := checkBoxInside(box, vox.Extent()); err != nil {
		return false, err
	}
	state, err := k.Init(vox)
	if err != nil {
		return false, err
	}

	return walkBox(vox, box, params, k.Size(),
		state.NotifyZChange,
		func(point *PointCursor, _ int) bool {
			return state.CountAtPoint(point) > 0
		},
	), nil
}

// ApplyForAcceptedCount counts the voxels of the whole volume that k accepts.
func ApplyForAcceptedCount(k BinaryKernel, vox *voxels.BinaryVoxels, params ApplicationParameters) (int, error) {
	state, err := k.Init(vox)
	if err != nil {
		return 0, err
	}

	count := 0
	walkBox(vox, wholeBox(vox.Extent()), params, k.Size(),
		state.NotifyZChange,
		func(point *PointCursor, _ int) bool {
			if state.AcceptPoint(point) {
				count++
			}
			return false
		},
	)
	return count, nil
}

// ApplyForCountOnMask counts voxels inside the mask's bounding box that are on in the mask
// and accepted by k. The mask is checked first, so k is only evaluated on mask voxels.
func ApplyForCountOnMask(
	k BinaryKernel,
	vox *voxels.BinaryVoxels,
	mask *voxels.ObjectMask,
	params ApplicationParameters,
) (int, error) {
	box := mask.BoundingBox()
	if err := checkBoxInside(box, vox.Extent()); err != nil {
		return 0, err
	}
	state, err := k.Init(vox)
	if err != nil {
		return 0, err
	}

	maskOn := mask.BinaryValues().On
	var maskSlice []byte
	count := 0
	walkBox(vox, box, params, k.Size(),
		func(slices BufferRetriever, z int) {
			state.NotifyZChange(slices, z)
			maskSlice = mask.SliceLocal(z - box.Min.Z)
		},
		func(point *PointCursor, localIndex int) bool {
			if maskSlice[localIndex] == maskOn && state.AcceptPoint(point) {
				count++
			}
			return false
		},
	)
	return count, nil
}
