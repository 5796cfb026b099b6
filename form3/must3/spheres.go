package must3

import (
	"math"

	"github.com/soypat/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// CubeSphere returns a sphere made by projecting a cube subdivided into
// resolution by resolution quads per side onto the sphere. All edges are
// smooth. A resolution of 1 returns the cube inscribed in the sphere.
func CubeSphere(radius float64, resolution int) *brep.Mesh {
	if resolution < 1 {
		panic("resolution < 1")
	}
	if radius <= 0 {
		panic("radius <= 0")
	}
	if resolution == 1 {
		m := Cube(2 * radius / math.Sqrt(3))
		m.SetAllSmooth()
		return m
	}
	b := newBuilder()
	type index [3]int
	verts := make(map[index]brep.VertexID)
	res := float64(resolution)
	vertex := func(i index) brep.VertexID {
		v, ok := verts[i]
		if !ok {
			p := r3.Vec{X: float64(i[0])/res - 0.5, Y: float64(i[1])/res - 0.5, Z: float64(i[2])/res - 0.5}
			v = b.m.AddVertex(r3.Scale(radius, r3.Unit(p)))
			verts[i] = v
		}
		return v
	}
	add := func(a, b index) index { return index{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
	for side := 0; side < 6; side++ {
		front := side%2 == 0
		var origin, xAxis, yAxis index
		dir := 1
		if !front {
			origin = index{resolution, resolution, resolution}
			dir = -1
		}
		xAxis[side/2] = dir
		yAxis[(side/2+1)%3] = dir
		if front {
			xAxis, yAxis = yAxis, xAxis
		}
		for x := 0; x < resolution; x++ {
			for y := 0; y < resolution; y++ {
				i0 := origin
				for k := 0; k < x; k++ {
					i0 = add(i0, xAxis)
				}
				for k := 0; k < y; k++ {
					i0 = add(i0, yAxis)
				}
				i1 := add(i0, xAxis)
				b.face(vertex(i0), vertex(i1), vertex(add(i1, yAxis)), vertex(add(i0, yAxis)))
			}
		}
	}
	b.m.SetAllSmooth()
	return b.m
}

// UVSphere returns a latitude-longitude sphere with its poles on the Y
// axis. Faces touching the poles are triangles, the rest quads. All edges
// are smooth.
func UVSphere(radius float64, rings, segments int) *brep.Mesh {
	if rings < 2 || segments < 3 {
		panic("rings < 2 or segments < 3")
	}
	if radius <= 0 {
		panic("radius <= 0")
	}
	b := newBuilder()
	verts := make(map[[2]int]brep.VertexID)
	vertex := func(ring, segment int) brep.VertexID {
		key := [2]int{ring, segment % segments}
		if ring == 0 || ring == rings {
			key[1] = 0
		}
		v, ok := verts[key]
		if !ok {
			theta := float64(ring) / float64(rings) * math.Pi
			phi := float64(segment) / float64(segments) * 2 * math.Pi
			st, ct := math.Sincos(theta)
			sp, cp := math.Sincos(phi)
			v = b.m.AddVertex(r3.Scale(radius, r3.Vec{X: st * cp, Y: ct, Z: st * sp}))
			verts[key] = v
		}
		return v
	}
	for ring := 0; ring < rings; ring++ {
		for segment := 0; segment < segments; segment++ {
			v0 := vertex(ring, segment)
			v1 := vertex(ring, segment+1)
			v2 := vertex(ring+1, segment+1)
			v3 := vertex(ring+1, segment)
			switch {
			case v0 == v1:
				b.face(v0, v2, v3)
			case v2 == v3:
				b.face(v0, v1, v2)
			default:
				b.face(v0, v1, v2, v3)
			}
		}
	}
	b.m.SetAllSmooth()
	return b.m
}
