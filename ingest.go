package brep

import (
	"errors"
	"fmt"

	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Indexed is an indexed triangle mesh as stored in render buffers.
type Indexed struct {
	Positions []r3.Vec
	// Submeshes holds one triangle index list per submesh. Every three
	// indices into Positions form a triangle.
	Submeshes [][]int
	// UVs holds per-channel UVs parallel to Positions. Nil channels are
	// left unset.
	UVs [MaxUVChannels][]r2.Vec
	// Colors is nil or parallel to Positions.
	Colors []Color
	// WeldTolerance merges positions closer than the tolerance. When zero
	// only identical positions are merged.
	WeldTolerance float64
}

// FromIndexed builds a mesh from indexed triangles. Positions are merged
// into shared vertices. An edge shared by faces comes out smooth when all
// of them reference the same source indices at both its ends, so seams
// baked into the source by duplicating vertices stay sharp. Border edges
// with a single face have nothing to agree with and stay sharp. Triangles
// collapsing to fewer than three vertices after merging are dropped.
func FromIndexed(src Indexed) (*Mesh, error) {
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("brep: from indexed: %w", err)
	}
	var rep []int
	if src.WeldTolerance > 0 {
		rep = weld(src.Positions, src.WeldTolerance)
	} else {
		rep = make([]int, len(src.Positions))
		first := make(map[r3.Vec]int, len(src.Positions))
		for i, p := range src.Positions {
			j, ok := first[p]
			if !ok {
				j = i
				first[p] = i
			}
			rep[i] = j
		}
	}

	m := NewMesh()
	verts := make(map[int]VertexID)
	vertexOf := func(i int) VertexID {
		r := rep[i]
		v, ok := verts[r]
		if !ok {
			v = m.AddVertex(src.Positions[r])
			verts[r] = v
		}
		return v
	}
	// source holds the source index of each face corner.
	source := make(map[FaceID][3]int)
	for s, indices := range src.Submeshes {
		for t := 0; t+2 < len(indices); t += 3 {
			idx := [3]int{indices[t], indices[t+1], indices[t+2]}
			vs := []VertexID{vertexOf(idx[0]), vertexOf(idx[1]), vertexOf(idx[2])}
			if vs[0] == vs[1] || vs[1] == vs[2] || vs[2] == vs[0] {
				continue
			}
			f := m.addFace(vs)
			fr := &m.faces[f]
			fr.submesh = s
			for k, i := range idx {
				for ch, uvs := range src.UVs {
					if uvs != nil {
						fr.setUV(vs[k], ch, uvs[i])
					}
				}
				if src.Colors != nil {
					fr.setColor(vs[k], src.Colors[i])
				}
			}
			source[f] = idx
		}
	}

	for i := range m.edges {
		er := &m.edges[i]
		if !er.alive || len(er.faces) < 2 {
			continue
		}
		f0 := er.faces[0]
		s0, s1 := m.sourceOf(f0, er.v[0], source), m.sourceOf(f0, er.v[1], source)
		er.smooth = true
		for _, g := range er.faces[1:] {
			if m.sourceOf(g, er.v[0], source) != s0 || m.sourceOf(g, er.v[1], source) != s1 {
				er.smooth = false
				break
			}
		}
	}
	return m, nil
}

func (m *Mesh) sourceOf(f FaceID, v VertexID, source map[FaceID][3]int) int {
	for k, w := range m.faces[f].verts {
		if w == v {
			return source[f][k]
		}
	}
	return -1
}

func (src *Indexed) validate() error {
	n := len(src.Positions)
	for i, p := range src.Positions {
		if !d3.IsFinite(p) {
			return fmt.Errorf("position %d is not finite: %v", i, p)
		}
	}
	for s, indices := range src.Submeshes {
		if len(indices)%3 != 0 {
			return fmt.Errorf("submesh %d: %d indices is not a multiple of 3", s, len(indices))
		}
		for _, i := range indices {
			if i < 0 || i >= n {
				return fmt.Errorf("submesh %d: index %d out of range [0,%d)", s, i, n)
			}
		}
	}
	for ch, uvs := range src.UVs {
		if uvs != nil && len(uvs) != n {
			return fmt.Errorf("uv channel %d: %d uvs for %d positions", ch, len(uvs), n)
		}
	}
	if src.Colors != nil && len(src.Colors) != n {
		return fmt.Errorf("%d colors for %d positions", len(src.Colors), n)
	}
	if src.WeldTolerance < 0 {
		return errors.New("negative weld tolerance")
	}
	return nil
}

// FromTriangles builds a mesh from a triangle soup. Identical positions
// become shared vertices and every edge is sharp.
func FromTriangles(tris [][3]r3.Vec) (*Mesh, error) {
	src := Indexed{
		Positions: make([]r3.Vec, 0, 3*len(tris)),
		Submeshes: [][]int{make([]int, 0, 3*len(tris))},
	}
	for _, t := range tris {
		for _, p := range t {
			src.Submeshes[0] = append(src.Submeshes[0], len(src.Positions))
			src.Positions = append(src.Positions, p)
		}
	}
	return FromIndexed(src)
}
