package brep_test

import (
	"math"
	"testing"

	"github.com/soypat/brep"
	"github.com/soypat/brep/internal/d2"
	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTriangulateQuadShortDiagonal(t *testing.T) {
	m := brep.NewMesh()
	// Kite whose 0-2 diagonal is much longer than 1-3.
	f, err := m.AddPolygon(
		r3.Vec{X: 0}, r3.Vec{X: 1, Y: -0.2}, r3.Vec{X: 4}, r3.Vec{X: 1, Y: 0.2},
	)
	if err != nil {
		t.Fatal(err)
	}
	vs := m.FaceVertices(f)
	m.Triangulate()
	mustValidate(t, m)
	if m.NumFaces() != 2 {
		t.Fatalf("got %d faces", m.NumFaces())
	}
	if _, ok := m.EdgeBetween(vs[0], vs[2]); ok {
		t.Error("long diagonal used")
	}
	e, ok := m.EdgeBetween(vs[1], vs[3])
	if !ok {
		t.Fatal("short diagonal missing")
	}
	if !m.EdgeSmooth(e) {
		t.Error("interior edge not smooth")
	}
	e, _ = m.EdgeBetween(vs[0], vs[1])
	if m.EdgeSmooth(e) {
		t.Error("boundary edge became smooth")
	}
}

func TestTriangulateFan(t *testing.T) {
	m := brep.NewMesh()
	var ps []r3.Vec
	for i := 0; i < 6; i++ {
		s, c := math.Sincos(float64(i) * math.Pi / 3)
		ps = append(ps, r3.Vec{X: c, Y: s})
	}
	f, _ := m.AddPolygon(ps...)
	vs := m.FaceVertices(f)
	e01, _ := m.EdgeBetween(vs[0], vs[1])
	m.SetEdgeSmooth(e01, true)
	m.Triangulate()
	mustValidate(t, m)
	if m.NumFaces() != 4 || m.NumVertices() != 6 {
		t.Fatalf("got %d faces %d vertices", m.NumFaces(), m.NumVertices())
	}
	for _, f := range m.Faces() {
		if m.FaceVertices(f)[0] != vs[0] {
			t.Error("fan not anchored at first vertex")
		}
		if n := m.Normal(f); n.Z <= 0 {
			t.Error("winding flipped")
		}
	}
	if e, _ := m.EdgeBetween(vs[0], vs[1]); e != e01 || !m.EdgeSmooth(e) {
		t.Error("boundary edge lost its flag")
	}
}

func TestTriangulateRadial(t *testing.T) {
	m := brep.NewMesh()
	f, _ := m.AddPolygon(
		r3.Vec{X: 0}, r3.Vec{X: 2}, r3.Vec{X: 2, Y: 2}, r3.Vec{Y: 2},
	)
	m.SetFaceMode(f, brep.Radial)
	m.SetFaceUV(f, 1, r2.Vec{}, r2.Vec{X: 1}, r2.Vec{X: 1, Y: 1}, r2.Vec{Y: 1})
	m.SetFaceColor(f, brep.Color{G: 1})
	m.SetAttr(f, 3, -1)
	m.SetSubmesh(f, 2)
	m.Triangulate()
	mustValidate(t, m)
	if m.NumFaces() != 4 || m.NumVertices() != 5 || m.NumEdges() != 8 {
		t.Fatalf("got %d faces %d vertices %d edges", m.NumFaces(), m.NumVertices(), m.NumEdges())
	}
	center := m.Vertices()[4]
	if p := m.VertexPos(center); !d3.EqualWithin(p, r3.Vec{X: 1, Y: 1}, tol) {
		t.Errorf("center at %v", p)
	}
	for _, f := range m.Faces() {
		if m.FaceVertices(f)[0] != center {
			t.Error("triangle does not start at center")
		}
		if uv, ok := m.UV(f, center, 1); !ok || !d2.EqualWithin(uv, r2.Vec{X: 0.5, Y: 0.5}, tol) {
			t.Errorf("center uv %v %v", uv, ok)
		}
		if _, ok := m.ColorOf(f, center); ok {
			t.Error("center got a color")
		}
		for _, v := range m.FaceVertices(f)[1:] {
			if c, ok := m.ColorOf(f, v); !ok || c.G != 1 {
				t.Error("corner color lost")
			}
		}
		if a, ok := m.Attr(f, 3); !ok || a != -1 {
			t.Error("attr lost")
		}
		if m.Submesh(f) != 2 || m.FaceMode(f) != brep.Radial {
			t.Error("face tags lost")
		}
	}
	for _, e := range m.VertexEdges(center) {
		if !m.EdgeSmooth(e) {
			t.Error("spoke not smooth")
		}
	}
}

func TestTriangulateIdempotent(t *testing.T) {
	m, _, _ := unitCube(t)
	m.Triangulate()
	mustValidate(t, m)
	nf, nv, ne := m.NumFaces(), m.NumVertices(), m.NumEdges()
	if nf != 12 || nv != 8 || ne != 18 {
		t.Fatalf("got %d faces %d vertices %d edges", nf, nv, ne)
	}
	var before []r3.Vec
	for _, v := range m.Vertices() {
		before = append(before, m.VertexPos(v))
	}
	faces := m.Faces()
	m.Triangulate()
	mustValidate(t, m)
	if m.NumFaces() != nf || m.NumVertices() != nv || m.NumEdges() != ne {
		t.Fatal("second triangulation changed the mesh")
	}
	for i, f := range m.Faces() {
		if f != faces[i] {
			t.Fatal("triangles replaced")
		}
	}
	for i, v := range m.Vertices() {
		if m.VertexPos(v) != before[i] {
			t.Fatal("vertex moved")
		}
	}
}

func TestFaceTrianglesDoesNotMutate(t *testing.T) {
	m, _, fs := unitCube(t)
	m.SetFaceMode(fs[0], brep.Radial)
	tri := m.FaceTriangles(fs[0])
	if len(tri.Corners) != 5 || len(tri.Triangles) != 4 {
		t.Fatalf("got %d corners %d triangles", len(tri.Corners), len(tri.Triangles))
	}
	if tri.Corners[4].Vertex != brep.NoVertex {
		t.Error("center corner has a vertex")
	}
	if m.NumVertices() != 8 || m.NumFaces() != 6 {
		t.Error("mesh modified")
	}
}
