// Package morphology provides structuring-element kernels (erosion, dilation, outline and
// neighbor counting) and the iterated operations built from them.
package morphology

import (
	"go.viam.com/voxelkernel/kernel"
)

type neighbor int

const (
	neighborOn neighbor = iota
	neighborOff
	neighborOutside
)

// resolve applies the outside policy to a neighbor. It returns false when the neighbor
// takes no part in the evaluation.
func resolve(point *kernel.PointCursor, n neighbor) (neighbor, bool) {
	if n != neighborOutside {
		return n, true
	}
	if point.IgnoreOutside() {
		return n, false
	}
	if point.OutsideIsOn() {
		return neighborOn, true
	}
	return neighborOff, true
}

func classify(point *kernel.PointCursor, buf []byte, inside bool) neighbor {
	if !inside || buf == nil {
		return neighborOutside
	}
	if point.IsBufferOn(buf) {
		return neighborOn
	}
	return neighborOff
}

// neighborhood caches the slice window of a traversal. slices[r+dz] is the buffer dz
// slices from the focus, nil when it lies outside the volume.
type neighborhood struct {
	radius int
	slices [][]byte
}

func newNeighborhood(size int) *neighborhood {
	radius := (size - 1) / 2
	return &neighborhood{radius: radius, slices: make([][]byte, 2*radius+1)}
}

func (n *neighborhood) notify(slices kernel.BufferRetriever) {
	for dz := -n.radius; dz <= n.radius; dz++ {
		buf, ok := slices.GetLocal(dz)
		if !ok {
			buf = nil
		}
		n.slices[dz+n.radius] = buf
	}
}

func (n *neighborhood) center() []byte {
	return n.slices[n.radius]
}

// visitCross walks the face neighbors of the cursor: four in the plane, plus the slices
// directly above and below when z participates. It stops as soon as visit returns true.
// The cursor is restored after every step.
func (n *neighborhood) visitCross(point *kernel.PointCursor, visit func(neighbor) bool) bool {
	current := n.center()

	point.DecrementX()
	stop := visit(classify(point, current, point.NonNegativeX()))
	point.IncrementX()
	if stop {
		return true
	}

	point.IncrementX()
	stop = visit(classify(point, current, point.LessThanMaxX()))
	point.DecrementX()
	if stop {
		return true
	}

	point.DecrementY()
	stop = visit(classify(point, current, point.NonNegativeY()))
	point.IncrementY()
	if stop {
		return true
	}

	point.IncrementY()
	stop = visit(classify(point, current, point.LessThanMaxY()))
	point.DecrementY()
	if stop {
		return true
	}

	if !point.UseZ() || n.radius == 0 {
		return false
	}
	if visit(classify(point, n.slices[n.radius-1], true)) {
		return true
	}
	return visit(classify(point, n.slices[n.radius+1], true))
}

// visitBox walks every voxel of the cube (or square, without z) around the cursor except
// the cursor itself. It stops as soon as visit returns true.
func (n *neighborhood) visitBox(point *kernel.PointCursor, visit func(neighbor) bool) bool {
	p := point.Point()
	extent := point.Extent()
	values := point.BinaryValues()
	index := point.Index()

	zRadius := 0
	if point.UseZ() {
		zRadius = n.radius
	}
	for dz := -zRadius; dz <= zRadius; dz++ {
		buf := n.slices[n.radius+dz]
		for dy := -n.radius; dy <= n.radius; dy++ {
			y := p.Y + dy
			for dx := -n.radius; dx <= n.radius; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				x := p.X + dx
				nb := neighborOutside
				if buf != nil && x >= 0 && y >= 0 && x < extent.X && y < extent.Y {
					nb = neighborOff
					if buf[index+dy*extent.X+dx] == values.On {
						nb = neighborOn
					}
				}
				if visit(nb) {
					return true
				}
			}
		}
	}
	return false
}

type shape int

const (
	crossShape shape = iota
	boxShape
)

func (s shape) String() string {
	if s == crossShape {
		return "cross"
	}
	return "box"
}

func (n *neighborhood) visit(s shape, point *kernel.PointCursor, visit func(neighbor) bool) bool {
	if s == crossShape {
		return n.visitCross(point, visit)
	}
	return n.visitBox(point, visit)
}
