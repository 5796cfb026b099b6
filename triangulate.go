package brep

// Triangulate replaces every face with more than three vertices by the
// triangles of FaceTriangles. Radial faces gain a center vertex. Edges
// created inside a face's triangulation are marked smooth; edges of the
// original face keep their flag. Triangulating a triangle mesh does nothing.
func (m *Mesh) Triangulate() {
	for _, f := range m.Faces() {
		if len(m.faces[f].verts) > 3 {
			m.triangulateFace(f)
		}
	}
}

func (m *Mesh) triangulateFace(f FaceID) []FaceID {
	plan := m.FaceTriangles(f)
	parent := m.faces[f]
	ids := make([]VertexID, len(plan.Corners))
	for i, c := range plan.Corners {
		ids[i] = c.Vertex
		if c.Vertex == NoVertex {
			ids[i] = m.AddVertex(c.Pos)
		}
	}

	children := make([]FaceID, 0, len(plan.Triangles))
	for _, tri := range plan.Triangles {
		a, b, c := ids[tri[0]], ids[tri[1]], ids[tri[2]]
		if a == b || b == c || c == a {
			continue
		}
		child := m.addFace([]VertexID{a, b, c})
		cr := &m.faces[child]
		for _, k := range tri {
			cr.setCorner(ids[k], plan.Corners[k])
		}
		inherit(cr, &parent)
		children = append(children, child)
	}
	// Children are attached before the parent goes so that the parent's
	// edges, and their smooth flags, survive through de-duplication.
	m.removeFace(f)

	for _, child := range children {
		for _, e := range m.faces[child].edges {
			if containsEdge(parent.edges, e) || !allIn(m.edges[e].faces, children) {
				continue
			}
			m.edges[e].smooth = true
		}
	}
	return children
}

func containsEdge(es []EdgeID, e EdgeID) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

func allIn(fs, set []FaceID) bool {
	for _, f := range fs {
		found := false
		for _, g := range set {
			if f == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
