package must3

import (
	"math"

	"github.com/soypat/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// builder adds faces to a mesh under construction. Arguments are validated
// by the primitives before any face is added so face errors are bugs.
type builder struct {
	m *brep.Mesh
}

func newBuilder() builder { return builder{m: brep.NewMesh()} }

func (b builder) face(vs ...brep.VertexID) brep.FaceID {
	f, err := b.m.AddFace(vs...)
	if err != nil {
		panic(err)
	}
	return f
}

// Quad returns a single square face of side size on the XZ plane, facing +Y.
func Quad(size float64) *brep.Mesh {
	if size <= 0 {
		panic("size <= 0")
	}
	b := newBuilder()
	hs := size / 2
	b.face(
		b.m.AddVertex(r3.Vec{X: hs, Z: hs}),
		b.m.AddVertex(r3.Vec{X: hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Z: hs}),
	)
	return b.m
}

// Cube returns a cube of side size centered at the origin. All its edges
// are sharp.
func Cube(size float64) *brep.Mesh {
	if size <= 0 {
		panic("size <= 0")
	}
	b := newBuilder()
	hs := size / 2
	v := [8]brep.VertexID{
		b.m.AddVertex(r3.Vec{X: hs, Y: hs, Z: hs}),
		b.m.AddVertex(r3.Vec{X: hs, Y: hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Y: hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Y: hs, Z: hs}),
		b.m.AddVertex(r3.Vec{X: hs, Y: -hs, Z: hs}),
		b.m.AddVertex(r3.Vec{X: hs, Y: -hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Y: -hs, Z: -hs}),
		b.m.AddVertex(r3.Vec{X: -hs, Y: -hs, Z: hs}),
	}
	b.face(v[0], v[1], v[2], v[3]) // +Y
	b.face(v[7], v[6], v[5], v[4]) // -Y
	b.face(v[4], v[5], v[1], v[0]) // +X
	b.face(v[5], v[6], v[2], v[1]) // -Z
	b.face(v[6], v[7], v[3], v[2]) // -X
	b.face(v[7], v[4], v[0], v[3]) // +Z
	return b.m
}

// SquareGrid returns width by height square faces of side cellSize on the
// XZ plane, facing +Y, with a corner at the origin.
func SquareGrid(width, height int, cellSize float64) *brep.Mesh {
	if width < 1 || height < 1 {
		panic("grid dimensions < 1")
	}
	if cellSize <= 0 {
		panic("cell size <= 0")
	}
	b := newBuilder()
	vs := make([][]brep.VertexID, width+1)
	for x := range vs {
		vs[x] = make([]brep.VertexID, height+1)
		for y := range vs[x] {
			vs[x][y] = b.m.AddVertex(r3.Vec{X: float64(x) * cellSize, Z: float64(y) * cellSize})
		}
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			b.face(vs[x][y], vs[x][y+1], vs[x+1][y+1], vs[x+1][y])
		}
	}
	return b.m
}

// TriangleGrid returns a grid of equilateral triangles of side sideSize on
// the XZ plane, facing +Y and centered at the origin. Every row holds
// 2*width triangles.
func TriangleGrid(width, height int, sideSize float64) *brep.Mesh {
	if width < 1 || height < 1 {
		panic("grid dimensions < 1")
	}
	if sideSize <= 0 {
		panic("side size <= 0")
	}
	b := newBuilder()
	h := sideSize * math.Sqrt(3) / 2
	offset := r3.Vec{X: -0.5 * float64(width) * sideSize, Z: -0.5 * float64(height) * h}
	vs := make([][]brep.VertexID, width+1)
	for x := range vs {
		vs[x] = make([]brep.VertexID, height+1)
		for y := range vs[x] {
			p := r3.Vec{X: (float64(x) + float64(y%2)*0.5) * sideSize, Z: float64(y) * h}
			vs[x][y] = b.m.AddVertex(r3.Add(p, offset))
		}
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			v0, v1, v2, v3 := vs[x][y], vs[x][y+1], vs[x+1][y+1], vs[x+1][y]
			if y%2 == 0 {
				b.face(v0, v1, v3)
				b.face(v1, v2, v3)
			} else {
				b.face(v0, v1, v2)
				b.face(v0, v2, v3)
			}
		}
	}
	return b.m
}
