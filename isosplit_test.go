package brep_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/brep"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// grid returns an n by n grid of unit quads on the XY plane.
func grid(t testing.TB, n int) *brep.Mesh {
	t.Helper()
	m := brep.NewMesh()
	vs := make([]brep.VertexID, (n+1)*(n+1))
	for i := range vs {
		vs[i] = m.AddVertex(r3.Vec{X: float64(i % (n + 1)), Y: float64(i / (n + 1))})
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*(n+1) + x
			if _, err := m.AddFace(vs[i], vs[i+1], vs[i+n+2], vs[i+n+1]); err != nil {
				t.Fatal(err)
			}
		}
	}
	return m
}

func TestSplitByFieldPartition(t *testing.T) {
	m := grid(t, 4)
	for _, f := range m.Faces() {
		var uvs []r2.Vec
		for _, v := range m.FaceVertices(f) {
			p := m.VertexPos(v)
			uvs = append(uvs, r2.Vec{X: p.X, Y: p.Y})
		}
		m.SetFaceUV(f, 0, uvs...)
	}
	field := brep.PositionFunc(func(p r3.Vec) float64 { return p.X + 0.25*p.Y - 1.6 })
	res, err := m.SplitByField(field, brep.SplitOptions{Smooth: true})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(res.Crossings) == 0 {
		t.Fatal("no crossings")
	}
	if len(res.Negative)+len(res.Positive) != m.NumFaces() {
		t.Fatalf("%d+%d tagged faces for %d faces", len(res.Negative), len(res.Positive), m.NumFaces())
	}
	crossing := make(map[brep.VertexID]bool)
	for _, v := range res.Crossings {
		crossing[v] = true
		p := m.VertexPos(v)
		if d := field(p); math.Abs(d) > 1e-12 {
			t.Errorf("crossing %v off the isoline by %g", p, d)
		}
	}
	check := func(faces []brep.FaceID, positive bool) {
		for _, f := range faces {
			for _, v := range m.FaceVertices(f) {
				if crossing[v] {
					uv, _ := m.UV(f, v, 0)
					p := m.VertexPos(v)
					if math.Abs(uv.X-p.X) > 1e-12 || math.Abs(uv.Y-p.Y) > 1e-12 {
						t.Errorf("crossing uv %v not interpolated to %v", uv, p)
					}
					continue
				}
				if got := field(m.VertexPos(v)) >= 0; got != positive {
					t.Errorf("vertex %d with sign %v in face tagged %v", v, got, positive)
				}
			}
		}
	}
	check(res.Negative, false)
	check(res.Positive, true)

	// Crossings are shared by the triangles on both sides of an edge.
	for _, v := range res.Crossings {
		if n := len(m.VertexFaces(v)); n < 2 {
			t.Errorf("crossing %d used by %d faces", v, n)
		}
	}
	// The cut is smooth when requested.
	for _, e := range m.Edges() {
		a, b := m.EdgeVertices(e)
		if crossing[a] && crossing[b] && !m.EdgeSmooth(e) {
			t.Error("cut edge not smooth")
		}
	}
}

// hexFan returns six triangles around a center vertex.
func hexFan(t testing.TB) (*brep.Mesh, brep.VertexID) {
	t.Helper()
	m := brep.NewMesh()
	center := m.AddVertex(r3.Vec{})
	var ring [6]brep.VertexID
	for i := range ring {
		s, c := math.Sincos(float64(i) * math.Pi / 3)
		ring[i] = m.AddVertex(r3.Vec{X: c, Y: s})
	}
	for i := range ring {
		if _, err := m.AddFace(center, ring[i], ring[(i+1)%6]); err != nil {
			t.Fatal(err)
		}
	}
	return m, center
}

func TestSplitByFieldIslands(t *testing.T) {
	field := func(center brep.VertexID) brep.VertexFunc {
		return func(m *brep.Mesh, v brep.VertexID) float64 {
			if v == center {
				return 1
			}
			return -1
		}
	}

	m, center := hexFan(t)
	res, err := m.SplitByField(field(center), brep.SplitOptions{MinIslandVertices: 2})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(res.Crossings) != 0 || len(res.Positive) != 0 || len(res.Negative) != 6 {
		t.Errorf("island not suppressed: %d crossings %d positive %d negative",
			len(res.Crossings), len(res.Positive), len(res.Negative))
	}
	if m.NumFaces() != 6 {
		t.Errorf("got %d faces", m.NumFaces())
	}

	m, center = hexFan(t)
	res, err = m.SplitByField(field(center), brep.SplitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(res.Crossings) != 6 || len(res.Positive) != 6 || len(res.Negative) != 6 {
		t.Errorf("got %d crossings %d positive %d negative",
			len(res.Crossings), len(res.Positive), len(res.Negative))
	}
	for _, f := range res.Positive {
		if len(m.FaceVertices(f)) != 3 {
			t.Error("corner piece is not a triangle")
		}
	}
	for _, f := range res.Negative {
		if len(m.FaceVertices(f)) != 4 {
			t.Error("remaining piece is not a quad")
		}
	}
	for _, v := range res.Crossings {
		if p := m.VertexPos(v); math.Abs(r3.Norm(p)-0.5) > 1e-12 {
			t.Errorf("crossing at %v not halfway", p)
		}
	}
}

func TestSplitByFieldEdgeSmoothness(t *testing.T) {
	m := brep.NewMesh()
	m.AddPolygon(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	m.SetAllSmooth()
	res, err := m.SplitByField(brep.PositionFunc(func(p r3.Vec) float64 {
		return p.X - 0.5
	}), brep.SplitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if len(res.Crossings) != 2 || m.NumEdges() != 6 {
		t.Fatalf("got %d crossings and %d edges", len(res.Crossings), m.NumEdges())
	}
	cut, ok := m.EdgeBetween(res.Crossings[0], res.Crossings[1])
	if !ok {
		t.Fatal("crossings not joined")
	}
	if m.EdgeSmooth(cut) {
		t.Error("cut edge smooth without SplitOptions.Smooth")
	}
	// Halves of the two cut edges and the uncut edge stay smooth.
	if n := countSmooth(m); n != 5 {
		t.Errorf("got %d smooth edges, want 5", n)
	}
}

func TestSplitByFieldTriangulates(t *testing.T) {
	m := grid(t, 1)
	res, err := m.SplitByField(brep.PositionFunc(func(r3.Vec) float64 { return 1 }), brep.SplitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Positive) != 2 || m.NumFaces() != 2 {
		t.Errorf("got %d positive of %d faces", len(res.Positive), m.NumFaces())
	}
}

type failingField struct{}

var errField = errors.New("field unavailable")

func (failingField) EvaluateVertices(*brep.Mesh, []brep.VertexID, []float64) error {
	return errField
}

func TestSplitByFieldErrors(t *testing.T) {
	m := grid(t, 2)
	if _, err := m.SplitByField(failingField{}, brep.SplitOptions{}); !errors.Is(err, errField) {
		t.Errorf("got %v", err)
	}
	mustValidate(t, m)
	if _, err := m.SplitByField(nil, brep.SplitOptions{}); err == nil {
		t.Error("nil field accepted")
	}
	if _, err := m.SplitByField(failingField{}, brep.SplitOptions{Epsilon: -1}); err == nil {
		t.Error("negative epsilon accepted")
	}
}
