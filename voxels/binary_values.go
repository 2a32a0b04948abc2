// Package voxels contains the byte voxel volumes that kernels read from and write to.
package voxels

import (
	"github.com/pkg/errors"
)

// BinaryValues is the pair of byte values that encode "on" and "off" in a binary volume.
type BinaryValues struct {
	On  byte
	Off byte
}

// DefaultBinaryValues encodes on as 255 and off as 0.
var DefaultBinaryValues = BinaryValues{On: 255, Off: 0}

// NewBinaryValues returns an encoding with distinct on and off values.
func NewBinaryValues(on, off byte) (BinaryValues, error) {
	if on == off {
		return BinaryValues{}, errors.Errorf("on and off values must differ, both are %d", on)
	}
	return BinaryValues{On: on, Off: off}, nil
}

// IsOn reports whether b is the on value.
func (bv BinaryValues) IsOn(b byte) bool {
	return b == bv.On
}

// IsOff reports whether b is the off value.
func (bv BinaryValues) IsOff(b byte) bool {
	return b == bv.Off
}

// Encode maps a boolean onto the on/off pair.
func (bv BinaryValues) Encode(on bool) byte {
	if on {
		return bv.On
	}
	return bv.Off
}

// Invert swaps the on and off values.
func (bv BinaryValues) Invert() BinaryValues {
	return BinaryValues{On: bv.Off, Off: bv.On}
}
