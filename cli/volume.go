package cli

import (
	"os"

	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

func parseExtent(dims []int) (spatialmath.Extent, error) {
	if len(dims) != 3 {
		return spatialmath.Extent{}, errors.Errorf("extent needs exactly three dimensions X,Y,Z but got %v", dims)
	}
	return spatialmath.NewExtent(dims[0], dims[1], dims[2])
}

// readRawVolume loads a raw byte dump of extent.Volume() bytes, x varying fastest, then y,
// then z.
func readRawVolume(path string, extent spatialmath.Extent) (*voxels.Voxels, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vox, err := voxels.NewFromBytes(extent, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read volume %q", path)
	}
	return vox, nil
}

func writeRawVolume(path string, vox *voxels.Voxels) error {
	return os.WriteFile(path, vox.Bytes(), 0o600)
}
