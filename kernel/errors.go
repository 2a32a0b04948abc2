package kernel

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/spatialmath"
)

// BoxOutsideExtentError is returned when a traversal region is not fully inside the volume.
type BoxOutsideExtentError struct {
	Box    spatialmath.BoundingBox
	Extent spatialmath.Extent
}

func (e *BoxOutsideExtentError) Error() string {
	return fmt.Sprintf("bounding box %v is not contained in volume extent %v", e.Box, e.Extent)
}

func checkBoxInside(box spatialmath.BoundingBox, extent spatialmath.Extent) error {
	if err := box.Validate(); err != nil {
		return errors.Wrapf(err, "cannot traverse bounding box %v", box)
	}
	if !extent.ContainsBox(box) {
		return &BoxOutsideExtentError{Box: box, Extent: extent}
	}
	return nil
}
