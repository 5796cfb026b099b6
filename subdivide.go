package brep

import (
	"fmt"
)

// Subdivide triangulates the mesh and then splits every triangle into four
// levels times, inserting one vertex at the middle of every edge.
//
// New edges are not left sharp: edge halves keep the smoothness of the
// edge they come from and edges inside a split triangle are smooth, so a
// subdivided smooth surface exports as one smooth group. Call SetAllSharp
// or AutoSmooth afterwards for plain sharp or angle based shading.
func (m *Mesh) Subdivide(levels int) error {
	if levels < 0 {
		return fmt.Errorf("brep: subdivide: negative levels %d", levels)
	}
	m.Triangulate()
	for i := 0; i < levels; i++ {
		faces := m.Faces()
		for _, f := range faces {
			if n := len(m.faces[f].verts); n != 3 {
				return fmt.Errorf("brep: subdivide: face %d has %d vertices: %w", f, n, ErrNotTriangle)
			}
		}
		mids := make(map[[2]VertexID]VertexID)
		for _, f := range faces {
			m.subdivideFace(f, mids)
		}
	}
	return nil
}

func (m *Mesh) subdivideFace(f FaceID, mids map[[2]VertexID]VertexID) {
	parent := m.faces[f]
	var (
		c      [3]Corner
		mc     [3]Corner
		mv     [3]VertexID
		smooth [3]bool
	)
	for i, v := range parent.verts {
		c[i] = m.corner(&parent, v)
		smooth[i] = m.edges[parent.edges[i]].smooth
	}
	for i := range mc {
		mv[i], mc[i] = m.midpoint(c[i], c[(i+1)%3], mids)
	}

	children := [4][3]int{
		// Corners 0-2 are original vertices, 3-5 are edge midpoints.
		{3, 1, 4},
		{4, 2, 5},
		{5, 0, 3},
		{3, 4, 5},
	}
	all := [6]Corner{c[0], c[1], c[2], mc[0], mc[1], mc[2]}
	ids := [6]VertexID{parent.verts[0], parent.verts[1], parent.verts[2], mv[0], mv[1], mv[2]}
	for _, tri := range children {
		child := m.addFace([]VertexID{ids[tri[0]], ids[tri[1]], ids[tri[2]]})
		cr := &m.faces[child]
		for _, k := range tri {
			cr.setCorner(ids[k], all[k])
		}
		inherit(cr, &parent)
	}
	m.removeFace(f)

	for i := 0; i < 3; i++ {
		if smooth[i] {
			m.markSmooth(parent.verts[i], mv[i])
			m.markSmooth(mv[i], parent.verts[(i+1)%3])
		}
		m.markSmooth(mv[i], mv[(i+1)%3])
	}
}

// midpoint returns the vertex in the middle of the edge between corners a
// and b, creating it on first use within a pass.
func (m *Mesh) midpoint(a, b Corner, mids map[[2]VertexID]VertexID) (VertexID, Corner) {
	if b.Vertex < a.Vertex {
		a, b = b, a
	}
	c := lerpCorner(a, b, 0.5)
	key := [2]VertexID{a.Vertex, b.Vertex}
	v, ok := mids[key]
	if !ok {
		v = m.AddVertex(c.Pos)
		mids[key] = v
	}
	c.Vertex = v
	return v, c
}

func (m *Mesh) markSmooth(a, b VertexID) {
	if e, ok := m.EdgeBetween(a, b); ok {
		m.edges[e].smooth = true
	}
}
