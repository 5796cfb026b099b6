package brep

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexID is a handle to a vertex owned by a Mesh.
type VertexID int

// EdgeID is a handle to an edge owned by a Mesh.
type EdgeID int

// FaceID is a handle to a face owned by a Mesh.
type FaceID int

// NoVertex marks a triangulation corner that has no vertex in the mesh.
const NoVertex VertexID = -1

// AttrKey identifies a face attribute. Attribute values are opaque to
// the kernel; operators copy them from a face to the faces replacing it.
type AttrKey int

// TriangulationMode selects how a face with more than three vertices
// is split into triangles.
type TriangulationMode uint8

const (
	// Fan emits triangles sharing one corner of the face.
	Fan TriangulationMode = iota
	// Radial emits one triangle per face edge around a new center vertex.
	Radial
)

func (t TriangulationMode) String() string {
	switch t {
	case Fan:
		return "fan"
	case Radial:
		return "radial"
	}
	return "TriangulationMode(?)"
}

type vertexRecord struct {
	pos r3.Vec
	// edges holds each incident edge once.
	edges []EdgeID
	// faces holds one entry per reference a face makes to the vertex.
	faces   []FaceID
	tracked bool
	alive   bool
}

type edgeRecord struct {
	v      [2]VertexID
	smooth bool
	// faces holds one entry per reference a face makes to the edge,
	// in attachment order.
	faces []FaceID
	alive bool
}

// other returns the endpoint of the edge that is not v.
func (e *edgeRecord) other(v VertexID) VertexID {
	if e.v[0] == v {
		return e.v[1]
	}
	return e.v[0]
}

func (e *edgeRecord) joins(a, b VertexID) bool {
	return (e.v[0] == a && e.v[1] == b) || (e.v[0] == b && e.v[1] == a)
}

type uvKey struct {
	v  VertexID
	ch int
}

type faceRecord struct {
	verts []VertexID
	// edges[i] joins verts[i] and verts[(i+1)%len(verts)].
	edges   []EdgeID
	uvs     map[uvKey]r2.Vec
	colors  map[VertexID]Color
	attrs   map[AttrKey]float64
	submesh int
	mode    TriangulationMode
	alive   bool
}

func (f *faceRecord) setUV(v VertexID, ch int, uv r2.Vec) {
	if f.uvs == nil {
		f.uvs = make(map[uvKey]r2.Vec)
	}
	f.uvs[uvKey{v: v, ch: ch}] = uv
}

func (f *faceRecord) setColor(v VertexID, c Color) {
	if f.colors == nil {
		f.colors = make(map[VertexID]Color)
	}
	f.colors[v] = c
}

func (f *faceRecord) setAttr(k AttrKey, val float64) {
	if f.attrs == nil {
		f.attrs = make(map[AttrKey]float64)
	}
	f.attrs[k] = val
}

// addFace creates a face over vs without validating the arguments.
func (m *Mesh) addFace(vs []VertexID) FaceID {
	f := FaceID(len(m.faces))
	m.faces = append(m.faces, faceRecord{alive: true})
	m.nFaces++
	m.setFaceVertices(f, vs)
	return f
}

// setFaceVertices re-points the vertex list of f. Old references are
// detached before the new edges are wired so that edge lookup never sees
// f on both its old and new edges. Edges left without faces are destroyed
// last, which lets a re-pointed face reuse its previous edges along with
// their smooth flags.
func (m *Mesh) setFaceVertices(f FaceID, vs []VertexID) {
	old := m.faces[f].edges
	m.detachFace(f)
	verts := make([]VertexID, len(vs))
	copy(verts, vs)
	edges := make([]EdgeID, len(vs))
	for i, v0 := range verts {
		v1 := verts[(i+1)%len(verts)]
		e, ok := m.EdgeBetween(v0, v1)
		if !ok {
			e = m.newEdge(v0, v1)
		}
		edges[i] = e
	}
	fr := &m.faces[f]
	fr.verts = verts
	fr.edges = edges
	m.attachFace(f)
	m.collectEdges(old)
}

// attachFace adds f to the back-references of its vertices and edges.
func (m *Mesh) attachFace(f FaceID) {
	fr := &m.faces[f]
	for _, v := range fr.verts {
		vr := &m.verts[v]
		vr.faces = append(vr.faces, f)
		if !vr.tracked {
			vr.tracked = true
			m.nTracked++
		}
	}
	for _, e := range fr.edges {
		er := &m.edges[e]
		er.faces = append(er.faces, f)
	}
}

// detachFace removes f from the back-references of its vertices and edges.
// The face keeps its own vertex and edge lists.
func (m *Mesh) detachFace(f FaceID) {
	fr := &m.faces[f]
	for _, v := range fr.verts {
		vr := &m.verts[v]
		vr.faces = removeOne(vr.faces, f)
	}
	for _, e := range fr.edges {
		er := &m.edges[e]
		er.faces = removeOne(er.faces, f)
	}
}

func (m *Mesh) newEdge(v0, v1 VertexID) EdgeID {
	e := EdgeID(len(m.edges))
	m.edges = append(m.edges, edgeRecord{v: [2]VertexID{v0, v1}, alive: true})
	m.nEdges++
	m.verts[v0].edges = append(m.verts[v0].edges, e)
	m.verts[v1].edges = append(m.verts[v1].edges, e)
	return e
}

// collectEdges destroys the edges in es that no face references anymore.
func (m *Mesh) collectEdges(es []EdgeID) {
	for _, e := range es {
		er := &m.edges[e]
		if !er.alive || len(er.faces) > 0 {
			continue
		}
		for _, v := range er.v {
			m.verts[v].edges = removeOne(m.verts[v].edges, e)
		}
		*er = edgeRecord{}
		m.nEdges--
	}
}

// removeFace detaches f from its neighbours and destroys it.
func (m *Mesh) removeFace(f FaceID) {
	m.detachFace(f)
	m.collectEdges(m.faces[f].edges)
	m.faces[f] = faceRecord{}
	m.nFaces--
}

func removeOne[T comparable](s []T, x T) []T {
	for i, y := range s {
		if y == x {
			copy(s[i:], s[i+1:])
			return s[:len(s)-1]
		}
	}
	return s
}

func (m *Mesh) vertexOK(v VertexID) bool {
	return v >= 0 && int(v) < len(m.verts) && m.verts[v].alive
}

func (m *Mesh) edgeOK(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].alive
}

func (m *Mesh) faceOK(f FaceID) bool {
	return f >= 0 && int(f) < len(m.faces) && m.faces[f].alive
}

func (m *Mesh) vertex(v VertexID) *vertexRecord {
	if !m.vertexOK(v) {
		panic("brep: invalid vertex handle")
	}
	return &m.verts[v]
}

func (m *Mesh) edge(e EdgeID) *edgeRecord {
	if !m.edgeOK(e) {
		panic("brep: invalid edge handle")
	}
	return &m.edges[e]
}

func (m *Mesh) face(f FaceID) *faceRecord {
	if !m.faceOK(f) {
		panic("brep: invalid face handle")
	}
	return &m.faces[f]
}
