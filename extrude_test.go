package brep_test

import (
	"errors"
	"testing"

	"github.com/soypat/brep"
	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func unitQuad(t testing.TB) (*brep.Mesh, brep.FaceID) {
	t.Helper()
	m := brep.NewMesh()
	f, err := m.AddPolygon(
		r3.Vec{X: 0.5, Z: 0.5}, r3.Vec{X: 0.5, Z: -0.5},
		r3.Vec{X: -0.5, Z: -0.5}, r3.Vec{X: -0.5, Z: 0.5},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m, f
}

func TestExtrudeUnitQuad(t *testing.T) {
	m, f := unitQuad(t)
	original := m.FaceVertices(f)
	m.SetFaceUV(f, 0, r2.Vec{X: 1}, r2.Vec{X: 2}, r2.Vec{X: 3}, r2.Vec{X: 4})
	sides, err := m.Extrude([]brep.FaceID{f}, r3.Vec{Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(sides) != 4 || m.NumFaces() != 5 {
		t.Fatalf("got %d sides and %d faces", len(sides), m.NumFaces())
	}
	top := m.FaceVertices(f)
	for i, v := range top {
		p := m.VertexPos(v)
		if p.Y != 1 {
			t.Errorf("top vertex %d at height %g", i, p.Y)
		}
		if v == original[i] {
			t.Error("top face kept an original vertex")
		}
		if uv, _ := m.UV(f, v, 0); uv.X != float64(i+1) {
			t.Errorf("top face uv %d not carried to duplicate: %v", i, uv)
		}
	}
	isSide := make(map[brep.FaceID]bool)
	for _, s := range sides {
		isSide[s] = true
		if len(m.FaceVertices(s)) != 4 {
			t.Error("side face is not a quad")
		}
		// Sides face outwards, away from the quad center.
		n := m.Normal(s)
		c := m.Centroid(s)
		if r3.Dot(n, r3.Vec{X: c.X, Z: c.Z}) <= 0 {
			t.Errorf("side %d faces inwards", s)
		}
	}
	for _, v := range original {
		if m.VertexPos(v).Y != 0 {
			t.Error("original vertex moved")
		}
		faces := m.VertexFaces(v)
		if len(faces) != 2 {
			t.Errorf("original vertex in %d faces, want 2", len(faces))
		}
		for _, g := range faces {
			if !isSide[g] {
				t.Error("original vertex still used by the top face")
			}
		}
	}
}

func TestExtrudeRoundTrip(t *testing.T) {
	m, _, fs := unitCube(t)
	top := fs[1]
	var before []r3.Vec
	for _, v := range m.FaceVertices(top) {
		before = append(before, m.VertexPos(v))
	}
	v := r3.Vec{X: 0.3, Y: -0.2, Z: 1.7}
	if _, err := m.Extrude([]brep.FaceID{top}, v); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if _, err := m.Extrude([]brep.FaceID{top}, r3.Scale(-1, v)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	for i, v := range m.FaceVertices(top) {
		if !d3.EqualWithin(m.VertexPos(v), before[i], 1e-12) {
			t.Errorf("vertex %d at %v, want %v", i, m.VertexPos(v), before[i])
		}
	}
	if m.NumFaces() != 6+4+4 {
		t.Errorf("got %d faces", m.NumFaces())
	}
}

func TestExtrudeRegion(t *testing.T) {
	// Two quads sharing an edge are extruded together: the shared edge is
	// not bridged and its vertices are moved once.
	m := brep.NewMesh()
	var vs [6]brep.VertexID
	for i := range vs {
		vs[i] = m.AddVertex(r3.Vec{X: float64(i % 3), Y: float64(i / 3)})
	}
	f1, _ := m.AddFace(vs[0], vs[1], vs[4], vs[3])
	f2, _ := m.AddFace(vs[1], vs[2], vs[5], vs[4])
	sides, err := m.Extrude([]brep.FaceID{f2, f1, f2}, r3.Vec{Z: 2})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(sides) != 6 {
		t.Fatalf("got %d sides, want 6", len(sides))
	}
	for _, f := range []brep.FaceID{f1, f2} {
		for _, v := range m.FaceVertices(f) {
			if m.VertexPos(v).Z != 2 {
				t.Error("cap vertex not moved exactly once")
			}
		}
	}
	if len(m.FaceNeighbours(f1)) != 4 {
		t.Error("caps no longer share their edge")
	}
}

func TestExtrudeClosedRegion(t *testing.T) {
	// A whole closed mesh has no silhouette: it only moves.
	m, _, fs := unitCube(t)
	sides, err := m.Extrude(fs[:], r3.Vec{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(sides) != 0 || m.NumVertices() != 8 {
		t.Errorf("got %d sides and %d vertices", len(sides), m.NumVertices())
	}
	if b := m.Bounds(); b.Min.X != 1 {
		t.Errorf("cube not moved: %v", b)
	}
}

func TestExtrudeNormals(t *testing.T) {
	m, _, fs := unitCube(t)
	sides, err := m.ExtrudeNormals([]brep.FaceID{fs[1], fs[5]}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(sides) != 6 {
		t.Fatalf("got %d sides", len(sides))
	}
	for _, v := range m.FaceVertices(fs[1]) {
		p := m.VertexPos(v)
		if p.X > 0.5 {
			// Shared by both faces: moved along the diagonal.
			if !d3.EqualWithin(p, r3.Vec{X: 1 + 0.5/1.4142135623730951, Y: p.Y, Z: 1 + 0.5/1.4142135623730951}, 1e-12) {
				t.Errorf("shared vertex at %v", p)
			}
		} else if p.Z != 1.5 {
			t.Errorf("top vertex at %v", p)
		}
	}
}

func TestExtrudeOpenBoundary(t *testing.T) {
	// Border edges of an open mesh bound the region as much as edges
	// shared with faces left behind.
	m, f := unitQuad(t)
	sides, err := m.ExtrudeNormals([]brep.FaceID{f}, 2)
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(sides) != 4 || m.NumFaces() != 5 || m.NumVertices() != 8 {
		t.Fatalf("got %d sides, %d faces and %d vertices", len(sides), m.NumFaces(), m.NumVertices())
	}
	for _, v := range m.FaceVertices(f) {
		if p := m.VertexPos(v); p.Y != 2 {
			t.Errorf("top vertex at %v", p)
		}
	}
	if len(m.FaceNeighbours(f)) != 4 {
		t.Error("top face not connected to its sides")
	}

	// A strip of two quads leaves its shared edge alone.
	g := brep.NewMesh()
	var vs [6]brep.VertexID
	for i := range vs {
		vs[i] = g.AddVertex(r3.Vec{X: float64(i % 3), Y: float64(i / 3)})
	}
	f1, _ := g.AddFace(vs[0], vs[1], vs[4], vs[3])
	g.AddFace(vs[1], vs[2], vs[5], vs[4])
	sides, err = g.Extrude([]brep.FaceID{f1}, r3.Vec{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, g)
	if len(sides) != 4 {
		t.Errorf("got %d sides, want 4", len(sides))
	}
}

func TestExtrudeDeadFace(t *testing.T) {
	m, _, fs := unitCube(t)
	m.RemoveFace(fs[0])
	_, err := m.Extrude([]brep.FaceID{fs[1], fs[0]}, r3.Vec{Z: 1})
	if !errors.Is(err, brep.ErrDeadHandle) {
		t.Fatalf("got %v", err)
	}
	if m.NumFaces() != 5 || m.NumVertices() != 8 {
		t.Error("failed extrusion mutated the mesh")
	}
	if sides, err := m.Extrude(nil, r3.Vec{Z: 1}); err != nil || sides != nil {
		t.Error("empty extrusion", sides, err)
	}
}
