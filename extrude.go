package brep

import (
	"fmt"
	"sort"

	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// outsideEdge is an edge on the silhouette of an extruded region, with its
// endpoints in the winding of the region face owning it.
type outsideEdge struct {
	v0, v1 VertexID
	owner  FaceID
}

// Extrude moves faces by dir and bridges the gap between the moved region
// and the rest of the mesh with new quads, one per silhouette edge. The
// returned bridging faces are in creation order.
func (m *Mesh) Extrude(faces []FaceID, dir r3.Vec) ([]FaceID, error) {
	region, err := m.region(faces)
	if err != nil {
		return nil, fmt.Errorf("brep: extrude: %w", err)
	}
	return m.extrude(region, func(moved []VertexID) {
		for _, v := range moved {
			m.verts[v].pos = r3.Add(m.verts[v].pos, dir)
		}
	}), nil
}

// ExtrudeNormals is like Extrude but moves each vertex of the region by
// distance along the normalized sum of the normals of the region faces
// using it. Vertices whose normal sum is zero stay in place.
func (m *Mesh) ExtrudeNormals(faces []FaceID, distance float64) ([]FaceID, error) {
	region, err := m.region(faces)
	if err != nil {
		return nil, fmt.Errorf("brep: extrude normals: %w", err)
	}
	return m.extrude(region, func(moved []VertexID) {
		sums := make(map[VertexID]r3.Vec, len(moved))
		for _, f := range region {
			n := m.Normal(f)
			for _, v := range uniqueVerts(m.faces[f].verts) {
				sums[v] = r3.Add(sums[v], n)
			}
		}
		for _, v := range moved {
			dir := d3.Unit(sums[v])
			m.verts[v].pos = r3.Add(m.verts[v].pos, r3.Scale(distance, dir))
		}
	}), nil
}

// region validates faces and returns them sorted and without duplicates.
func (m *Mesh) region(faces []FaceID) ([]FaceID, error) {
	region := make([]FaceID, 0, len(faces))
	for _, f := range faces {
		if !m.faceOK(f) {
			return nil, fmt.Errorf("face %d: %w", f, ErrDeadHandle)
		}
		region = append(region, f)
	}
	sort.Slice(region, func(i, j int) bool { return region[i] < region[j] })
	return compactFaces(region), nil
}

func (m *Mesh) extrude(region []FaceID, move func(moved []VertexID)) []FaceID {
	if len(region) == 0 {
		return nil
	}
	in := make(map[FaceID]bool, len(region))
	for _, f := range region {
		in[f] = true
	}
	outside := m.outsideEdges(region, in)
	dup := m.splitVertices(outside)
	for _, f := range region {
		m.rewriteFace(f, dup)
	}

	var moved []VertexID
	seen := make(map[VertexID]bool)
	for _, f := range region {
		for _, v := range m.faces[f].verts {
			if !seen[v] {
				seen[v] = true
				moved = append(moved, v)
			}
		}
	}
	move(moved)

	bridges := make([]FaceID, len(outside))
	for i, oe := range outside {
		bridges[i] = m.bridge(oe, dup)
	}
	return bridges
}

// outsideEdges returns the edges of region faces that lie on an open
// boundary or have at least one face outside the region, in ascending
// owner order and edge order within the owner.
func (m *Mesh) outsideEdges(region []FaceID, in map[FaceID]bool) []outsideEdge {
	var outside []outsideEdge
	seen := make(map[EdgeID]bool)
	for _, f := range region {
		fr := &m.faces[f]
		for i, e := range fr.edges {
			if seen[e] {
				continue
			}
			seen[e] = true
			if !m.silhouette(e, in) {
				continue
			}
			// fr.edges[i] runs from verts[i] to verts[i+1] in the owner's
			// winding whatever the stored edge direction.
			outside = append(outside, outsideEdge{
				v0:    fr.verts[i],
				v1:    fr.verts[(i+1)%len(fr.verts)],
				owner: f,
			})
		}
	}
	return outside
}

// silhouette reports whether e bounds the region: it has a single face or
// a face outside the region.
func (m *Mesh) silhouette(e EdgeID, in map[FaceID]bool) bool {
	fs := m.edges[e].faces
	if len(fs) == 1 {
		return true
	}
	for _, g := range fs {
		if !in[g] {
			return true
		}
	}
	return false
}

// splitVertices creates one duplicate per vertex touched by an outside edge.
func (m *Mesh) splitVertices(outside []outsideEdge) map[VertexID]VertexID {
	dup := make(map[VertexID]VertexID)
	for _, oe := range outside {
		for _, v := range [2]VertexID{oe.v0, oe.v1} {
			if _, ok := dup[v]; !ok {
				dup[v] = m.AddVertex(m.verts[v].pos)
			}
		}
	}
	return dup
}

// rewriteFace re-points f at the duplicates of its split vertices,
// carrying the per-corner properties over.
func (m *Mesh) rewriteFace(f FaceID, dup map[VertexID]VertexID) {
	fr := &m.faces[f]
	vs := make([]VertexID, len(fr.verts))
	changed := false
	for i, v := range fr.verts {
		vs[i] = v
		if d, ok := dup[v]; ok {
			vs[i] = d
			changed = true
		}
	}
	if !changed {
		return
	}
	for k, uv := range fr.uvs {
		if d, ok := dup[k.v]; ok {
			delete(fr.uvs, k)
			fr.uvs[uvKey{v: d, ch: k.ch}] = uv
		}
	}
	for v, c := range fr.colors {
		if d, ok := dup[v]; ok {
			delete(fr.colors, v)
			fr.colors[d] = c
		}
	}
	m.setFaceVertices(f, vs)
}

func (m *Mesh) bridge(oe outsideEdge, dup map[VertexID]VertexID) FaceID {
	f := m.addFace([]VertexID{oe.v0, oe.v1, dup[oe.v1], dup[oe.v0]})
	inherit(&m.faces[f], &m.faces[oe.owner])
	return f
}

func uniqueVerts(vs []VertexID) []VertexID {
	u := make([]VertexID, 0, len(vs))
	for _, v := range vs {
		found := false
		for _, w := range u {
			if w == v {
				found = true
				break
			}
		}
		if !found {
			u = append(u, v)
		}
	}
	return u
}

// compactFaces removes consecutive duplicates from a sorted slice.
func compactFaces(fs []FaceID) []FaceID {
	if len(fs) == 0 {
		return fs
	}
	out := fs[:1]
	for _, f := range fs[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}
