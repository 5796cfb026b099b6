package brep

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// weld returns for every point the index of the point it is merged into.
// Points are visited in order and each unassigned point claims every
// unassigned point within tol of it.
func weld(ps []r3.Vec, tol float64) []int {
	rep := make([]int, len(ps))
	for i := range rep {
		rep[i] = -1
	}
	pts := make(weldPoints, len(ps))
	for i, p := range ps {
		pts[i] = weldPoint{pos: p, index: i}
	}
	tree := kdtree.New(pts, false)
	tol2 := tol * tol
	for i, p := range ps {
		if rep[i] >= 0 {
			continue
		}
		rep[i] = i
		keep := kdtree.NewDistKeeper(tol2)
		tree.NearestSet(keep, weldPoint{pos: p})
		for _, c := range keep.Heap {
			// The keeper is seeded with a nil sentinel.
			if c.Comparable == nil {
				continue
			}
			j := c.Comparable.(weldPoint).index
			if rep[j] < 0 {
				rep[j] = i
			}
		}
	}
	return rep
}

type weldPoint struct {
	pos   r3.Vec
	index int
}

// Compare returns the signed distance of p from the plane passing through
// c and perpendicular to the dimension d.
func (p weldPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(weldPoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	case 2:
		return p.pos.Z - q.pos.Z
	}
	panic("illegal dimension")
}

// Dims returns the number of dimensions described by the receiver.
func (p weldPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between c and the receiver.
func (p weldPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(weldPoint)
	return r3.Norm2(r3.Sub(p.pos, q.pos))
}

type weldPoints []weldPoint

func (p weldPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p weldPoints) Len() int                      { return len(p) }
func (p weldPoints) Pivot(d kdtree.Dim) int {
	return weldPlane{weldPoints: p, Dim: d}.Pivot()
}
func (p weldPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// weldPlane is a kdtree.SortSlicer sorting along one dimension.
type weldPlane struct {
	kdtree.Dim
	weldPoints
}

func (p weldPlane) Less(i, j int) bool {
	return p.weldPoints[i].Compare(p.weldPoints[j], p.Dim) < 0
}
func (p weldPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p weldPlane) Slice(start, end int) kdtree.SortSlicer {
	p.weldPoints = p.weldPoints[start:end]
	return p
}
func (p weldPlane) Swap(i, j int) {
	p.weldPoints[i], p.weldPoints[j] = p.weldPoints[j], p.weldPoints[i]
}
