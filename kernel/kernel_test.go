package kernel

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/voxelkernel/spatialmath"
	"go.viam.com/voxelkernel/voxels"
)

func TestKernelSize(t *testing.T) {
	for _, size := range []int{1, 3, 5, 9} {
		test.That(t, NewBase(size).Size(), test.ShouldEqual, size)
	}
	for _, size := range []int{0, 2, 4, -3} {
		size := size
		test.That(t, func() { NewBase(size) }, test.ShouldPanic)
	}
}

func TestCountAccepted(t *testing.T) {
	vox := makeVolume(spatialmath.MustExtent(3, 3, 1), spatialmath.NewPoint3i(1, 1, 0), spatialmath.NewPoint3i(2, 2, 0))
	counter := CountAccepted(newSelfOnKernel())
	test.That(t, counter.Size(), test.ShouldEqual, 3)
	count, err := ApplyForCount(counter, vox, NewApplicationParameters(OutsideOff, false))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, count, test.ShouldEqual, 2)

	spy := newSpyKernel(true)
	spy.initErr = errors.New("no init")
	_, err = ApplyForCount(CountAccepted(spy), vox, NewApplicationParameters(OutsideOff, false))
	test.That(t, err, test.ShouldBeError, spy.initErr)
}

func TestAndKernelComposition(t *testing.T) {
	extent := spatialmath.MustExtent(9, 7, 4)
	vox := randomVolume(1, extent, 0.5)
	first := newSelfOnKernel()
	second := &leftOnKernel{NewBase(3)}
	and, err := NewAndKernel(first, second)
	test.That(t, err, test.ShouldBeNil)

	for _, policy := range []OutsidePolicy{OutsideIgnore, OutsideOn, OutsideOff} {
		params := NewApplicationParameters(policy, true)
		outFirst, err := Apply(first, vox, params)
		test.That(t, err, test.ShouldBeNil)
		outSecond, err := Apply(second, vox, params)
		test.That(t, err, test.ShouldBeNil)
		outAnd, err := Apply(and, vox, params)
		test.That(t, err, test.ShouldBeNil)

		for z := 0; z < extent.Z; z++ {
			for y := 0; y < extent.Y; y++ {
				for x := 0; x < extent.X; x++ {
					p := spatialmath.NewPoint3i(x, y, z)
					test.That(t, outAnd.IsOn(p), test.ShouldEqual, outFirst.IsOn(p) && outSecond.IsOn(p))
				}
			}
		}
	}
}

func TestAndKernelShortCircuit(t *testing.T) {
	vox := makeVolume(spatialmath.MustExtent(4, 3, 2))
	params := NewApplicationParameters(OutsideOff, true)

	first := newSpyKernel(false)
	second := newSpyKernel(true)
	and, err := NewAndKernel(first, second)
	test.That(t, err, test.ShouldBeNil)

	count, err := ApplyForAcceptedCount(and, vox, params)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, count, test.ShouldEqual, 0)
	test.That(t, first.calls, test.ShouldEqual, 24)
	test.That(t, second.calls, test.ShouldEqual, 0)
	// both children see every slice change
	test.That(t, first.notifies, test.ShouldEqual, 2)
	test.That(t, second.notifies, test.ShouldEqual, 2)

	first.accept = true
	count, err = ApplyForAcceptedCount(and, vox, params)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, count, test.ShouldEqual, 24)
	test.That(t, second.calls, test.ShouldEqual, 24)
}

func TestAndKernelErrors(t *testing.T) {
	big := &spyKernel{Base: NewBase(5)}
	_, err := NewAndKernel(newSpyKernel(true), big)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "different sizes")

	failing := newSpyKernel(true)
	failing.initErr = errors.New("broken")
	and, err := NewAndKernel(newSpyKernel(true), failing)
	test.That(t, err, test.ShouldBeNil)
	_, err = Apply(and, makeVolume(spatialmath.MustExtent(2, 2, 1)), NewApplicationParameters(OutsideOff, false))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Cause(err), test.ShouldEqual, failing.initErr)
	test.That(t, err.Error(), test.ShouldContainSubstring, "second kernel")
}

func TestConditionalKernelGating(t *testing.T) {
	extent := spatialmath.MustExtent(4, 4, 2)
	vox := makeVolume(extent)
	intensity := voxels.New(extent)
	bright := 0
	for z := 0; z < extent.Z; z++ {
		s := intensity.Slice(z)
		for i := range s {
			s[i] = byte((i * 37) % 256)
			if int(s[i]) >= 100 {
				bright++
			}
		}
	}

	spy := newSpyKernel(true)
	cond := NewConditionalKernel(spy, 100, intensity)
	test.That(t, cond.Size(), test.ShouldEqual, 3)
	test.That(t, cond.MinValue(), test.ShouldEqual, 100)

	count, err := ApplyForAcceptedCount(cond, vox, NewApplicationParameters(OutsideIgnore, true))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, count, test.ShouldEqual, bright)
	test.That(t, spy.calls, test.ShouldEqual, bright)
	test.That(t, spy.notifies, test.ShouldEqual, extent.Z)

	// every voxel below the threshold is rejected, whatever the wrapped kernel says
	out, err := Apply(cond, vox, NewApplicationParameters(OutsideIgnore, true))
	test.That(t, err, test.ShouldBeNil)
	for z := 0; z < extent.Z; z++ {
		for i, b := range intensity.Slice(z) {
			test.That(t, out.Slice(z)[i] == voxels.DefaultBinaryValues.On, test.ShouldEqual, int(b) >= 100)
		}
	}
}

func TestConditionalKernelMalformedIntensity(t *testing.T) {
	vox := makeVolume(spatialmath.MustExtent(4, 4, 2))
	cond := NewConditionalKernel(newSpyKernel(true), 1, voxels.New(spatialmath.MustExtent(4, 4, 1)))
	box := spatialmath.NewBoundingBoxFromExtent(spatialmath.Point3i{}, spatialmath.MustExtent(2, 2, 1))

	_, err := ApplyForCountInBox(CountAccepted(cond), vox, box, NewApplicationParameters(OutsideOff, false))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "does not match volume extent")

	_, err = ApplyUntilPositive(CountAccepted(NewConditionalKernel(newSpyKernel(true), 1, nil)), vox, box,
		NewApplicationParameters(OutsideOff, false))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no intensity volume")
}
