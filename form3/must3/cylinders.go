package must3

import (
	"math"

	"github.com/soypat/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder returns a cylinder of the given radius and height centered at
// the origin with its axis along Y. The caps are n-gons triangulated
// radially; edges between side faces are smooth and the cap rims sharp.
func Cylinder(radius, height float64, sides int) *brep.Mesh {
	if sides < 3 {
		panic("cylinder sides < 3")
	}
	if radius <= 0 || height <= 0 {
		panic("radius or height <= 0")
	}
	b := newBuilder()
	top := make([]brep.VertexID, sides)
	bottom := make([]brep.VertexID, sides)
	for i := range top {
		s, c := math.Sincos(float64(i) * 2 * math.Pi / float64(sides))
		top[i] = b.m.AddVertex(r3.Vec{X: radius * c, Y: height / 2, Z: radius * s})
		bottom[i] = b.m.AddVertex(r3.Vec{X: radius * c, Y: -height / 2, Z: radius * s})
	}
	side := make([]brep.FaceID, sides)
	for i := range side {
		j := (i + 1) % sides
		side[i] = b.face(top[i], top[j], bottom[j], bottom[i])
	}
	rtop := make([]brep.VertexID, sides)
	for i, v := range top {
		rtop[sides-1-i] = v
	}
	b.m.SetFaceMode(b.face(rtop...), brep.Radial)
	b.m.SetFaceMode(b.face(bottom...), brep.Radial)
	b.m.SetSmooth(side, true)
	return b.m
}
