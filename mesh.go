package brep

import (
	"fmt"

	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a polygon mesh with shared vertex, edge and face adjacency.
// All vertices, edges and faces are owned by the Mesh and referenced by
// handle. Handles of removed elements are never reused.
//
// A Mesh is not safe for concurrent use.
type Mesh struct {
	verts []vertexRecord
	edges []edgeRecord
	faces []faceRecord

	nTracked int
	nEdges   int
	nFaces   int
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// AddVertex creates a vertex at p. The vertex is not part of the mesh's
// vertex set until a face references it.
func (m *Mesh) AddVertex(p r3.Vec) VertexID {
	v := VertexID(len(m.verts))
	m.verts = append(m.verts, vertexRecord{pos: p, alive: true})
	return v
}

// AddFace creates a face over the vertex sequence vs. Consecutive vertices
// are joined by edges, reusing the edge between a vertex pair if one
// already exists. The winding of vs determines the face normal.
func (m *Mesh) AddFace(vs ...VertexID) (FaceID, error) {
	if err := m.checkFaceVertices(vs); err != nil {
		return -1, fmt.Errorf("brep: add face: %w", err)
	}
	return m.addFace(vs), nil
}

func (m *Mesh) checkFaceVertices(vs []VertexID) error {
	if len(vs) < 3 {
		return fmt.Errorf("%d vertices: %w", len(vs), ErrDegenerateFace)
	}
	for i, v := range vs {
		if !m.vertexOK(v) {
			return fmt.Errorf("vertex %d: %w", v, ErrDeadHandle)
		}
		if v == vs[(i+1)%len(vs)] {
			return fmt.Errorf("vertex %d repeated consecutively: %w", v, ErrDegenerateFace)
		}
	}
	return nil
}

// AddPolygon creates one new vertex per position and a face over them.
func (m *Mesh) AddPolygon(ps ...r3.Vec) (FaceID, error) {
	if len(ps) < 3 {
		return -1, fmt.Errorf("brep: add polygon: %d vertices: %w", len(ps), ErrDegenerateFace)
	}
	vs := make([]VertexID, len(ps))
	for i, p := range ps {
		vs[i] = m.AddVertex(p)
	}
	return m.addFace(vs), nil
}

// RemoveFace detaches f from its vertices and edges and destroys it.
// Edges left without faces are destroyed. Vertices are kept even when no
// face references them anymore.
func (m *Mesh) RemoveFace(f FaceID) error {
	if !m.faceOK(f) {
		return fmt.Errorf("brep: remove face %d: %w", f, ErrDeadHandle)
	}
	m.removeFace(f)
	return nil
}

// RemoveVertex removes every face touching v and then v itself.
func (m *Mesh) RemoveVertex(v VertexID) error {
	if !m.vertexOK(v) {
		return fmt.Errorf("brep: remove vertex %d: %w", v, ErrDeadHandle)
	}
	faces := append([]FaceID(nil), m.verts[v].faces...)
	for _, f := range faces {
		if m.faces[f].alive {
			m.removeFace(f)
		}
	}
	if m.verts[v].tracked {
		m.nTracked--
	}
	m.verts[v] = vertexRecord{}
	return nil
}

// Merge clones the vertices and faces of other into m, including edge
// smooth flags and per-face properties. It returns the mapping from
// vertices of other to their clones in m. other may be m itself.
func (m *Mesh) Merge(other *Mesh) map[VertexID]VertexID {
	// Snapshot so that merging a mesh into itself only clones what
	// existed before the call.
	nv, nf := len(other.verts), len(other.faces)
	type smoothEdge struct{ a, b VertexID }
	var smooth []smoothEdge
	for i := range other.edges {
		e := &other.edges[i]
		if e.alive && e.smooth {
			smooth = append(smooth, smoothEdge{a: e.v[0], b: e.v[1]})
		}
	}

	vmap := make(map[VertexID]VertexID)
	for i := 0; i < nv; i++ {
		vr := &other.verts[i]
		if vr.alive && vr.tracked {
			vmap[VertexID(i)] = m.AddVertex(vr.pos)
		}
	}
	for i := 0; i < nf; i++ {
		if !other.faces[i].alive {
			continue
		}
		src := other.faces[i]
		vs := make([]VertexID, len(src.verts))
		for j, v := range src.verts {
			vs[j] = vmap[v]
		}
		f := m.addFace(vs)
		dst := &m.faces[f]
		for k, uv := range src.uvs {
			dst.setUV(vmap[k.v], k.ch, uv)
		}
		for v, c := range src.colors {
			dst.setColor(vmap[v], c)
		}
		for k, val := range src.attrs {
			dst.setAttr(k, val)
		}
		dst.submesh = src.submesh
		dst.mode = src.mode
	}
	for _, se := range smooth {
		if e, ok := m.EdgeBetween(vmap[se.a], vmap[se.b]); ok {
			m.edges[e].smooth = true
		}
	}
	return vmap
}

// Faces returns the live faces in ascending handle order.
func (m *Mesh) Faces() []FaceID {
	fs := make([]FaceID, 0, m.nFaces)
	for i := range m.faces {
		if m.faces[i].alive {
			fs = append(fs, FaceID(i))
		}
	}
	return fs
}

// Vertices returns the vertices that have been referenced by a face and
// not removed, in ascending handle order.
func (m *Mesh) Vertices() []VertexID {
	vs := make([]VertexID, 0, m.nTracked)
	for i := range m.verts {
		if m.verts[i].alive && m.verts[i].tracked {
			vs = append(vs, VertexID(i))
		}
	}
	return vs
}

// Edges returns the live edges in ascending handle order.
func (m *Mesh) Edges() []EdgeID {
	es := make([]EdgeID, 0, m.nEdges)
	for i := range m.edges {
		if m.edges[i].alive {
			es = append(es, EdgeID(i))
		}
	}
	return es
}

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int { return m.nFaces }

// NumVertices returns the number of tracked vertices, those referenced by
// a face at some point and not removed since.
func (m *Mesh) NumVertices() int { return m.nTracked }

// NumEdges returns the number of live edges.
func (m *Mesh) NumEdges() int { return m.nEdges }

// VertexPos returns the position of v. It panics if v is not live.
func (m *Mesh) VertexPos(v VertexID) r3.Vec {
	return m.vertex(v).pos
}

// SetVertexPos moves v to p.
func (m *Mesh) SetVertexPos(v VertexID, p r3.Vec) error {
	if !m.vertexOK(v) {
		return fmt.Errorf("brep: set vertex position %d: %w", v, ErrDeadHandle)
	}
	m.verts[v].pos = p
	return nil
}

// VertexFaces returns the faces referencing v, one entry per reference.
func (m *Mesh) VertexFaces(v VertexID) []FaceID {
	return append([]FaceID(nil), m.vertex(v).faces...)
}

// VertexEdges returns the edges incident to v.
func (m *Mesh) VertexEdges(v VertexID) []EdgeID {
	return append([]EdgeID(nil), m.vertex(v).edges...)
}

// VertexNeighbours returns the vertices sharing an edge with v.
func (m *Mesh) VertexNeighbours(v VertexID) []VertexID {
	vr := m.vertex(v)
	ns := make([]VertexID, len(vr.edges))
	for i, e := range vr.edges {
		ns[i] = m.edges[e].other(v)
	}
	return ns
}

// FaceVertices returns the ordered vertices of f.
func (m *Mesh) FaceVertices(f FaceID) []VertexID {
	return append([]VertexID(nil), m.face(f).verts...)
}

// FaceEdges returns the edges of f. Edge i joins vertex i and i+1.
func (m *Mesh) FaceEdges(f FaceID) []EdgeID {
	return append([]EdgeID(nil), m.face(f).edges...)
}

// FaceNeighbours returns the distinct faces sharing an edge with f.
func (m *Mesh) FaceNeighbours(f FaceID) []FaceID {
	var ns []FaceID
	for _, e := range m.face(f).edges {
	FACES:
		for _, g := range m.edges[e].faces {
			if g == f {
				continue
			}
			for _, n := range ns {
				if n == g {
					continue FACES
				}
			}
			ns = append(ns, g)
		}
	}
	return ns
}

// EdgeVertices returns the endpoints of e in stored order.
func (m *Mesh) EdgeVertices(e EdgeID) (VertexID, VertexID) {
	er := m.edge(e)
	return er.v[0], er.v[1]
}

// EdgeFaces returns the faces referencing e in attachment order.
func (m *Mesh) EdgeFaces(e EdgeID) []FaceID {
	return append([]FaceID(nil), m.edge(e).faces...)
}

// EdgeSmooth reports whether e is marked smooth.
func (m *Mesh) EdgeSmooth(e EdgeID) bool {
	return m.edge(e).smooth
}

// SetEdgeSmooth marks e smooth or sharp.
func (m *Mesh) SetEdgeSmooth(e EdgeID, smooth bool) error {
	if !m.edgeOK(e) {
		return fmt.Errorf("brep: set edge smooth %d: %w", e, ErrDeadHandle)
	}
	m.edges[e].smooth = smooth
	return nil
}

// EdgeBetween returns the edge joining a and b in either direction.
func (m *Mesh) EdgeBetween(a, b VertexID) (EdgeID, bool) {
	if !m.vertexOK(a) || !m.vertexOK(b) {
		return -1, false
	}
	for _, e := range m.verts[a].edges {
		if m.edges[e].joins(a, b) {
			return e, true
		}
	}
	return -1, false
}

// Bounds returns the bounding box of the mesh's vertex set. The box of an
// empty mesh is the zero box.
func (m *Mesh) Bounds() r3.Box {
	box := d3.EmptyBox()
	for i := range m.verts {
		if m.verts[i].alive && m.verts[i].tracked {
			box = box.Include(m.verts[i].pos)
		}
	}
	if box.Empty() {
		return r3.Box{}
	}
	return r3.Box(box)
}
