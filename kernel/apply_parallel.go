package kernel

import (
	"context"
	"sync"

	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/utils"
	"go.viam.com/voxelkernel/voxels"
)

// sliceBox is the part of box lying in slice z.
func sliceBox(box spatialmath.BoundingBox, z int) spatialmath.BoundingBox {
	box.Min.Z = z
	box.Max.Z = z
	return box
}

// ApplyParallel is Apply with the z slices split across goroutines. Each group calls k.Init
// for its own state, possibly concurrently with other groups. The output is identical to Apply's.
func ApplyParallel(
	ctx context.Context,
	k BinaryKernel,
	vox *voxels.BinaryVoxels,
	params ApplicationParameters,
) (*voxels.BinaryVoxels, error) {
	values := vox.BinaryValues()
	out := voxels.NewBinary(vox.Extent(), values)
	box := wholeBox(vox.Extent())

	err := utils.GroupWorkParallel(ctx, vox.Extent().Z, nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc, error) {
			state, err := k.Init(vox)
			if err != nil {
				return nil, nil, err
			}
			var outSlice []byte
			notify := func(slices BufferRetriever, z int) {
				state.NotifyZChange(slices, z)
				outSlice = out.Slice(z)
			}
			visit := func(point *PointCursor, _ int) bool {
				outSlice[point.Index()] = values.Encode(state.AcceptPoint(point))
				return false
			}
			return func(memberNum, z int) error {
				walkBox(vox, sliceBox(box, z), params, k.Size(), notify, visit)
				return nil
			}, nil, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyForCountParallel is ApplyForCount with the z slices split across goroutines. Partial
// counts are merged once each group finishes.
func ApplyForCountParallel(
	ctx context.Context,
	k CountKernel,
	vox *voxels.BinaryVoxels,
	params ApplicationParameters,
) (int, error) {
	box := wholeBox(vox.Extent())

	var (
		mu    sync.Mutex
		total int
	)
	err := utils.GroupWorkParallel(ctx, vox.Extent().Z, nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc, error) {
			state, err := k.Init(vox)
			if err != nil {
				return nil, nil, err
			}
			count := 0
			visit := func(point *PointCursor, _ int) bool {
				count += state.CountAtPoint(point)
				return false
			}
			return func(memberNum, z int) error {
					walkBox(vox, sliceBox(box, z), params, k.Size(), state.NotifyZChange, visit)
					return nil
				}, func() {
					mu.Lock()
					total += count
					mu.Unlock()
				}, nil
		},
	)
	if err != nil {
		return 0, err
	}
	return total, nil
}
