package brep

import "fmt"

// Validate checks the adjacency invariants of the mesh:
//   - face edge i joins face vertices i and i+1,
//   - vertex and edge face lists hold exactly one entry per face reference,
//   - vertex edge lists hold exactly the live edges incident to the vertex,
//   - no two edges join the same vertex pair,
//   - every live edge is referenced by a face.
//
// Operators keep these invariants; Validate exists for tests and for
// callers sanity checking meshes they build.
func (m *Mesh) Validate() error {
	if err := m.validate(); err != nil {
		return fmt.Errorf("brep: invalid mesh: %w", err)
	}
	return nil
}

func (m *Mesh) validate() error {
	vertexRefs := make(map[VertexID]map[FaceID]int)
	edgeRefs := make(map[EdgeID]map[FaceID]int)
	count := func(refs map[FaceID]int, f FaceID) map[FaceID]int {
		if refs == nil {
			refs = make(map[FaceID]int)
		}
		refs[f]++
		return refs
	}
	nFaces := 0
	for i := range m.faces {
		fr := &m.faces[i]
		if !fr.alive {
			continue
		}
		nFaces++
		f := FaceID(i)
		n := len(fr.verts)
		if n < 3 || len(fr.edges) != n {
			return fmt.Errorf("face %d: %d vertices and %d edges", f, n, len(fr.edges))
		}
		for j, v := range fr.verts {
			if !m.vertexOK(v) {
				return fmt.Errorf("face %d references dead vertex %d", f, v)
			}
			if !m.verts[v].tracked {
				return fmt.Errorf("face %d references untracked vertex %d", f, v)
			}
			e := fr.edges[j]
			if !m.edgeOK(e) {
				return fmt.Errorf("face %d references dead edge %d", f, e)
			}
			if next := fr.verts[(j+1)%n]; !m.edges[e].joins(v, next) {
				return fmt.Errorf("face %d: edge %d does not join vertices %d and %d", f, e, v, next)
			}
			vertexRefs[v] = count(vertexRefs[v], f)
			edgeRefs[e] = count(edgeRefs[e], f)
		}
	}
	if nFaces != m.nFaces {
		return fmt.Errorf("face count %d, want %d", m.nFaces, nFaces)
	}

	nTracked := 0
	for i := range m.verts {
		vr := &m.verts[i]
		v := VertexID(i)
		if !vr.alive {
			if len(vr.faces) > 0 || len(vr.edges) > 0 {
				return fmt.Errorf("dead vertex %d has references", v)
			}
			continue
		}
		if vr.tracked {
			nTracked++
		}
		if err := sameRefs(vr.faces, vertexRefs[v]); err != nil {
			return fmt.Errorf("vertex %d: %w", v, err)
		}
		for j, e := range vr.edges {
			if !m.edgeOK(e) {
				return fmt.Errorf("vertex %d references dead edge %d", v, e)
			}
			if er := &m.edges[e]; er.v[0] != v && er.v[1] != v {
				return fmt.Errorf("vertex %d lists edge %d not incident to it", v, e)
			}
			for _, e2 := range vr.edges[j+1:] {
				if e2 == e {
					return fmt.Errorf("vertex %d lists edge %d twice", v, e)
				}
				if m.edges[e2].joins(m.edges[e].v[0], m.edges[e].v[1]) {
					return fmt.Errorf("edges %d and %d join the same vertices", e, e2)
				}
			}
		}
	}
	if nTracked != m.nTracked {
		return fmt.Errorf("vertex count %d, want %d", m.nTracked, nTracked)
	}

	nEdges := 0
	for i := range m.edges {
		er := &m.edges[i]
		if !er.alive {
			continue
		}
		nEdges++
		e := EdgeID(i)
		if er.v[0] == er.v[1] {
			return fmt.Errorf("edge %d joins vertex %d to itself", e, er.v[0])
		}
		if len(er.faces) == 0 {
			return fmt.Errorf("edge %d has no faces", e)
		}
		if err := sameRefs(er.faces, edgeRefs[e]); err != nil {
			return fmt.Errorf("edge %d: %w", e, err)
		}
		for _, v := range er.v {
			if !m.vertexOK(v) || !containsEdge(m.verts[v].edges, e) {
				return fmt.Errorf("edge %d missing from edges of vertex %d", e, v)
			}
		}
	}
	if nEdges != m.nEdges {
		return fmt.Errorf("edge count %d, want %d", m.nEdges, nEdges)
	}
	return nil
}

// sameRefs checks that the multiset fs matches want.
func sameRefs(fs []FaceID, want map[FaceID]int) error {
	got := make(map[FaceID]int, len(fs))
	for _, f := range fs {
		got[f]++
	}
	if len(got) != len(want) {
		return fmt.Errorf("references %d faces, want %d", len(got), len(want))
	}
	for f, n := range want {
		if got[f] != n {
			return fmt.Errorf("references face %d %d times, want %d", f, got[f], n)
		}
	}
	return nil
}
