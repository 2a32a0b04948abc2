package morphology

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

func applyIterations(
	k kernel.BinaryKernel,
	vox *voxels.BinaryVoxels,
	iterations int,
	params kernel.ApplicationParameters,
) (*voxels.BinaryVoxels, error) {
	if iterations < 0 {
		return nil, errors.Errorf("iterations must be non-negative but got %d", iterations)
	}
	out := vox.Copy()
	for i := 0; i < iterations; i++ {
		next, err := kernel.Apply(k, out, params)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d", i)
		}
		out = next
	}
	return out, nil
}

// Erode applies a cross erosion iterations times. Zero iterations returns a copy.
func Erode(vox *voxels.BinaryVoxels, iterations int, params kernel.ApplicationParameters) (*voxels.BinaryVoxels, error) {
	return applyIterations(NewErosionCross(), vox, iterations, params)
}

// Dilate applies a cross dilation iterations times. Zero iterations returns a copy.
func Dilate(vox *voxels.BinaryVoxels, iterations int, params kernel.ApplicationParameters) (*voxels.BinaryVoxels, error) {
	return applyIterations(NewDilationCross(), vox, iterations, params)
}

// Open erodes then dilates, removing structures thinner than the kernel.
func Open(vox *voxels.BinaryVoxels, iterations int, params kernel.ApplicationParameters) (*voxels.BinaryVoxels, error) {
	eroded, err := Erode(vox, iterations, params)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, iterations, params)
}

// Close dilates then erodes, filling gaps thinner than the kernel.
func Close(vox *voxels.BinaryVoxels, iterations int, params kernel.ApplicationParameters) (*voxels.BinaryVoxels, error) {
	dilated, err := Dilate(vox, iterations, params)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, iterations, params)
}

// OutlineOf returns the boundary voxels of vox.
func OutlineOf(vox *voxels.BinaryVoxels, params kernel.ApplicationParameters) (*voxels.BinaryVoxels, error) {
	return kernel.Apply(NewOutline(), vox, params)
}

// SurfaceArea counts the exposed faces of the on voxels.
func SurfaceArea(vox *voxels.BinaryVoxels, params kernel.ApplicationParameters) (int, error) {
	return kernel.ApplyForCount(NewCountOffNeighbors(), vox, params)
}

// HasBoundaryInBox reports whether any boundary voxel lies in box, stopping at the first.
func HasBoundaryInBox(
	vox *voxels.BinaryVoxels,
	box spatialmath.BoundingBox,
	params kernel.ApplicationParameters,
) (bool, error) {
	return kernel.ApplyUntilPositive(kernel.CountAccepted(NewOutline()), vox, box, params)
}
