package brep_test

import (
	"testing"

	"github.com/soypat/brep"
	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSubdivide(t *testing.T) {
	m := brep.NewMesh()
	f, _ := m.AddPolygon(r3.Vec{}, r3.Vec{X: 2}, r3.Vec{Y: 2})
	m.SetFaceUV(f, 5, r2.Vec{}, r2.Vec{X: 1}, r2.Vec{Y: 1})
	m.SetAttr(f, 9, 1)
	if err := m.Subdivide(2); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	// Level 2 of a triangle: 16 triangles over a 5-row triangular lattice.
	if m.NumFaces() != 16 || m.NumVertices() != 15 || m.NumEdges() != 30 {
		t.Fatalf("got %d faces %d vertices %d edges", m.NumFaces(), m.NumVertices(), m.NumEdges())
	}
	var area float64
	for _, f := range m.Faces() {
		area += m.Area(f)
		if n := m.Normal(f); n.Z <= 0 {
			t.Error("winding flipped")
		}
		if a, ok := m.Attr(f, 9); !ok || a != 1 {
			t.Error("attr lost")
		}
		for _, v := range m.FaceVertices(f) {
			p := m.VertexPos(v)
			uv, ok := m.UV(f, v, 5)
			if !ok || !d3.EqualWithin(r3.Vec{X: uv.X, Y: uv.Y}, r3.Scale(0.5, p), 1e-12) {
				t.Errorf("uv %v at %v", uv, p)
			}
		}
	}
	if area < 2-1e-12 || area > 2+1e-12 {
		t.Errorf("area %g, want 2", area)
	}
	boundary, smooth := 0, 0
	for _, e := range m.Edges() {
		switch {
		case len(m.EdgeFaces(e)) == 1:
			boundary++
			if m.EdgeSmooth(e) {
				t.Error("boundary edge became smooth")
			}
		case m.EdgeSmooth(e):
			smooth++
		}
	}
	if boundary != 12 || smooth != 18 {
		t.Errorf("got %d boundary and %d smooth edges", boundary, smooth)
	}
}

func TestSubdivideSharesMidpoints(t *testing.T) {
	m, _, _ := unitCube(t)
	if err := m.Subdivide(1); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	// 8 corners + 18 edge midpoints.
	if m.NumVertices() != 26 || m.NumFaces() != 48 {
		t.Errorf("got %d vertices %d faces", m.NumVertices(), m.NumFaces())
	}
	for _, v := range m.Vertices() {
		p := m.VertexPos(v)
		if p.X != 0 && p.X != 1 && p.Y != 0 && p.Y != 1 && p.Z != 0 && p.Z != 1 {
			t.Errorf("vertex %v off the cube surface", p)
		}
	}
}

func TestSubdivideArguments(t *testing.T) {
	m, _, _ := unitCube(t)
	if err := m.Subdivide(-1); err == nil {
		t.Error("negative levels accepted")
	}
	if m.NumFaces() != 6 {
		t.Error("failed subdivision mutated the mesh")
	}
	if err := m.Subdivide(0); err != nil {
		t.Fatal(err)
	}
	if m.NumFaces() != 12 {
		t.Errorf("level 0 should only triangulate, got %d faces", m.NumFaces())
	}
}
