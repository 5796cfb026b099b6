package brep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// SplitOptions configures SplitByField.
type SplitOptions struct {
	// Smooth marks the edge between the two halves of a split triangle smooth.
	Smooth bool
	// MinIslandVertices is the size under which a connected group of
	// vertices sharing a field sign is merged into its surroundings.
	// Zero disables island suppression.
	MinIslandVertices int
	// Epsilon is the magnitude of the value given to suppressed vertices.
	// Zero selects DefaultSplitEpsilon.
	Epsilon float64
}

// SplitResult lists the outcome of SplitByField.
type SplitResult struct {
	// Negative holds the faces whose corners all have negative values.
	Negative []FaceID
	// Positive holds the faces whose corners all have non-negative values.
	Positive []FaceID
	// Crossings holds the vertices created where edges cross zero.
	Crossings []VertexID
}

// isoCrossings lists, per sign pattern of a triangle's corners (bit i set
// when corner i is non-negative), the two face edges crossing zero. Face
// edge i joins corner i and i+1. The first edge starts at the isolated
// corner and the second ends at it.
var isoCrossings = [8][2]int{
	{}, {0, 2}, {1, 0}, {2, 1}, {2, 1}, {1, 0}, {0, 2}, {},
}

// SplitByField cuts the mesh along the zero isoline of field. The mesh is
// triangulated first. Triangles whose corners differ in sign are split
// into a triangle and a quad along the isoline, with crossing vertices
// shared between neighbouring triangles. Faces of the result are
// classified by the sign of their original corners.
//
// The two halves of a cut edge keep the smoothness of the edge they come
// from rather than turning sharp. The edge joining two crossings is
// smooth only when opts.Smooth is set.
//
// If field fails the mesh is left triangulated but otherwise unchanged.
func (m *Mesh) SplitByField(field ScalarField, opts SplitOptions) (SplitResult, error) {
	var res SplitResult
	if field == nil {
		return res, errors.New("brep: split: nil field")
	}
	if opts.Epsilon < 0 || opts.MinIslandVertices < 0 {
		return res, fmt.Errorf("brep: split: negative option (epsilon %g, min island %d)", opts.Epsilon, opts.MinIslandVertices)
	}
	eps := opts.Epsilon
	if eps == 0 {
		eps = DefaultSplitEpsilon
	}
	m.Triangulate()

	vs := m.Vertices()
	buf := make([]float64, len(vs))
	if err := field.EvaluateVertices(m, vs, buf); err != nil {
		return res, fmt.Errorf("brep: split: evaluating field: %w", err)
	}
	values := make([]float64, len(m.verts))
	for i, v := range vs {
		values[v] = buf[i]
	}
	if opts.MinIslandVertices > 1 {
		m.suppressIslands(vs, values, opts.MinIslandVertices, eps)
	}

	s := splitter{
		m:      m,
		values: values,
		smooth: opts.Smooth,
		cache:  make(map[[2]VertexID]VertexID),
		res:    &res,
	}
	for _, f := range m.Faces() {
		s.splitFace(f)
	}
	return res, nil
}

// suppressIslands gives the vertices of every same-sign component with
// fewer than min vertices a value of the opposite sign.
func (m *Mesh) suppressIslands(vs []VertexID, values []float64, min int, eps float64) {
	g := simple.NewUndirectedGraph()
	for _, v := range vs {
		g.AddNode(simple.Node(v))
	}
	for i := range m.edges {
		e := &m.edges[i]
		if !e.alive {
			continue
		}
		a, b := e.v[0], e.v[1]
		if (values[a] >= 0) == (values[b] >= 0) {
			g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
		}
	}
	for _, comp := range topo.ConnectedComponents(g) {
		if len(comp) >= min {
			continue
		}
		for _, n := range comp {
			v := VertexID(n.ID())
			if values[v] >= 0 {
				values[v] = -eps
			} else {
				values[v] = eps
			}
		}
	}
}

type splitter struct {
	m      *Mesh
	values []float64
	smooth bool
	// cache maps an ordered vertex pair to its crossing vertex.
	cache map[[2]VertexID]VertexID
	res   *SplitResult
}

func (s *splitter) splitFace(f FaceID) {
	m := s.m
	fr := &m.faces[f]
	if len(fr.verts) != 3 {
		return
	}
	var pattern int
	for i, v := range fr.verts {
		if s.values[v] >= 0 {
			pattern |= 1 << i
		}
	}
	switch pattern {
	case 0:
		s.res.Negative = append(s.res.Negative, f)
		return
	case 7:
		s.res.Positive = append(s.res.Positive, f)
		return
	}

	parent := *fr
	corners := [3]Corner{}
	for i, v := range parent.verts {
		corners[i] = m.corner(&parent, v)
	}
	edges := isoCrossings[pattern]
	iso := edges[0]
	i0, i1 := (iso+1)%3, (iso+2)%3
	x0, c0 := s.crossing(corners[iso], corners[i0])
	x1, c1 := s.crossing(corners[i1], corners[iso])
	smooth0 := m.edges[parent.edges[edges[0]]].smooth
	smooth1 := m.edges[parent.edges[edges[1]]].smooth

	tri := m.addFace([]VertexID{parent.verts[iso], x0, x1})
	quad := m.addFace([]VertexID{parent.verts[i0], parent.verts[i1], x1, x0})
	tr, qr := &m.faces[tri], &m.faces[quad]
	tr.setCorner(parent.verts[iso], corners[iso])
	tr.setCorner(x0, c0)
	tr.setCorner(x1, c1)
	qr.setCorner(parent.verts[i0], corners[i0])
	qr.setCorner(parent.verts[i1], corners[i1])
	qr.setCorner(x1, c1)
	qr.setCorner(x0, c0)
	inherit(tr, &parent)
	inherit(qr, &parent)
	m.removeFace(f)

	// The halves of a cut edge keep its smoothness.
	if smooth0 {
		m.markSmooth(parent.verts[iso], x0)
		m.markSmooth(x0, parent.verts[i0])
	}
	if smooth1 {
		m.markSmooth(parent.verts[i1], x1)
		m.markSmooth(x1, parent.verts[iso])
	}
	if s.smooth {
		m.markSmooth(x0, x1)
	}

	if pattern&(1<<iso) != 0 {
		s.res.Positive = append(s.res.Positive, tri)
		s.res.Negative = append(s.res.Negative, quad)
	} else {
		s.res.Negative = append(s.res.Negative, tri)
		s.res.Positive = append(s.res.Positive, quad)
	}
}

// crossing returns the vertex where the edge between corners a and b
// crosses zero, creating it on first use, along with the corner properties
// interpolated from a and b.
func (s *splitter) crossing(a, b Corner) (VertexID, Corner) {
	// Interpolate from the lower handle so that both triangles sharing the
	// edge compute the same position.
	lo, hi := a, b
	if hi.Vertex < lo.Vertex {
		lo, hi = hi, lo
	}
	h0, h1 := s.values[lo.Vertex], s.values[hi.Vertex]
	var t float64
	if h0 < h1 {
		t = -h0 / (h1 - h0)
	} else {
		t = 1 + h1/(h0-h1)
	}
	c := lerpCorner(lo, hi, t)
	key := [2]VertexID{lo.Vertex, hi.Vertex}
	x, ok := s.cache[key]
	if !ok {
		x = s.m.AddVertex(c.Pos)
		s.cache[key] = x
		s.res.Crossings = append(s.res.Crossings, x)
	}
	c.Vertex = x
	return x, c
}
