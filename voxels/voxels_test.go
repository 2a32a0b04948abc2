package voxels

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/voxelkernel/spatialmath"
)

func TestNewFromSlices(t *testing.T) {
	extent := spatialmath.MustExtent(2, 2, 2)
	vox, err := NewFromSlices(extent, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vox.Get(spatialmath.NewPoint3i(1, 1, 1)), test.ShouldEqual, byte(8))
	test.That(t, vox.Get(spatialmath.NewPoint3i(0, 1, 0)), test.ShouldEqual, byte(3))

	_, err = NewFromSlices(extent, [][]byte{{1, 2, 3, 4}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 2 z slices")

	_, err = NewFromSlices(extent, [][]byte{{1, 2, 3, 4}, {5, 6, 7}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "slice 1 has 3 voxels")
}

func TestNewFromBytes(t *testing.T) {
	extent := spatialmath.MustExtent(3, 1, 2)
	vox, err := NewFromBytes(extent, []byte{1, 2, 3, 4, 5, 6})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vox.Slice(1), test.ShouldResemble, []byte{4, 5, 6})
	test.That(t, vox.Bytes(), test.ShouldResemble, []byte{1, 2, 3, 4, 5, 6})

	_, err = NewFromBytes(extent, []byte{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVoxelsCopyIsDeep(t *testing.T) {
	vox := New(spatialmath.MustExtent(2, 2, 1))
	vox.Fill(7)
	cp := vox.Copy()
	vox.Set(spatialmath.NewPoint3i(0, 0, 0), 1)
	test.That(t, cp.Get(spatialmath.NewPoint3i(0, 0, 0)), test.ShouldEqual, byte(7))
	test.That(t, vox.Get(spatialmath.NewPoint3i(0, 0, 0)), test.ShouldEqual, byte(1))
}

func TestBinaryValues(t *testing.T) {
	_, err := NewBinaryValues(3, 3)
	test.That(t, err, test.ShouldNotBeNil)

	bv, err := NewBinaryValues(1, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bv.IsOn(1), test.ShouldBeTrue)
	test.That(t, bv.IsOff(1), test.ShouldBeFalse)
	test.That(t, bv.Encode(false), test.ShouldEqual, byte(0))
	test.That(t, bv.Invert(), test.ShouldResemble, BinaryValues{On: 0, Off: 1})
}

func TestBinaryVoxels(t *testing.T) {
	bv := BinaryValues{On: 10, Off: 20}
	vox := NewBinary(spatialmath.MustExtent(3, 3, 2), bv)
	test.That(t, vox.CountOn(), test.ShouldEqual, 0)
	test.That(t, vox.Get(spatialmath.NewPoint3i(2, 2, 1)), test.ShouldEqual, byte(20))

	vox.SetOn(spatialmath.NewPoint3i(1, 1, 1))
	vox.SetOn(spatialmath.NewPoint3i(0, 0, 0))
	test.That(t, vox.CountOn(), test.ShouldEqual, 2)
	test.That(t, vox.IsOn(spatialmath.NewPoint3i(1, 1, 1)), test.ShouldBeTrue)

	cp := vox.Copy()
	test.That(t, cp.Equal(vox), test.ShouldBeTrue)
	cp.SetOff(spatialmath.NewPoint3i(0, 0, 0))
	test.That(t, cp.Equal(vox), test.ShouldBeFalse)
	test.That(t, vox.CountOn(), test.ShouldEqual, 2)
}

func TestObjectMask(t *testing.T) {
	box := spatialmath.NewBoundingBoxFromExtent(spatialmath.NewPoint3i(2, 1, 0), spatialmath.MustExtent(2, 2, 1))
	mask := NewObjectMask(box, DefaultBinaryValues)
	mask.SetOnGlobal(spatialmath.NewPoint3i(3, 2, 0))

	test.That(t, mask.CountOn(), test.ShouldEqual, 1)
	test.That(t, mask.Contains(spatialmath.NewPoint3i(3, 2, 0)), test.ShouldBeTrue)
	test.That(t, mask.Contains(spatialmath.NewPoint3i(2, 1, 0)), test.ShouldBeFalse)
	test.That(t, mask.Contains(spatialmath.NewPoint3i(0, 0, 0)), test.ShouldBeFalse)
	test.That(t, mask.SliceLocal(0), test.ShouldResemble, []byte{0, 0, 0, 255})

	_, err := NewObjectMaskFromVoxels(box, NewBinary(spatialmath.MustExtent(3, 2, 1), DefaultBinaryValues))
	test.That(t, err, test.ShouldNotBeNil)

	inverted := spatialmath.BoundingBox{Min: spatialmath.NewPoint3i(3, 2, 0), Max: spatialmath.NewPoint3i(2, 1, 0)}
	_, err = NewObjectMaskFromVoxels(inverted, NewBinary(spatialmath.MustExtent(1, 1, 1), DefaultBinaryValues))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, func() { NewObjectMask(inverted, DefaultBinaryValues) }, test.ShouldPanic)
}

func TestInvalidExtent(t *testing.T) {
	for _, extent := range []spatialmath.Extent{{}, {X: 2, Y: 2}, {X: -1, Y: 2, Z: 2}} {
		test.That(t, func() { New(extent) }, test.ShouldPanic)
		test.That(t, func() { NewBinary(extent, DefaultBinaryValues) }, test.ShouldPanic)
		_, err := NewFromBytes(extent, nil)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "invalid extent")
		_, err = NewFromSlices(extent, nil)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestCenterOfGravity(t *testing.T) {
	vox := NewBinary(spatialmath.MustExtent(4, 3, 2), DefaultBinaryValues)
	_, ok := vox.CenterOfGravity()
	test.That(t, ok, test.ShouldBeFalse)

	vox.SetOn(spatialmath.NewPoint3i(0, 0, 0))
	vox.SetOn(spatialmath.NewPoint3i(3, 2, 1))
	center, ok := vox.CenterOfGravity()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, center, test.ShouldResemble, r3.Vector{X: 1.5, Y: 1, Z: 0.5})

	box := spatialmath.NewBoundingBoxFromExtent(spatialmath.NewPoint3i(5, 1, 2), spatialmath.MustExtent(2, 2, 1))
	mask := NewObjectMask(box, DefaultBinaryValues)
	_, ok = mask.CenterOfGravity()
	test.That(t, ok, test.ShouldBeFalse)
	mask.SetOnGlobal(spatialmath.NewPoint3i(5, 1, 2))
	mask.SetOnGlobal(spatialmath.NewPoint3i(6, 2, 2))
	center, ok = mask.CenterOfGravity()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, center, test.ShouldResemble, r3.Vector{X: 5.5, Y: 1.5, Z: 2})
}
