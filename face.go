package brep

import (
	"errors"
	"fmt"

	"github.com/soypat/brep/internal/d2"
	"github.com/soypat/brep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var errNotInFace = errors.New("vertex not in face")

// Corner is a face corner as seen by triangulation: the vertex with the
// owning face's per-corner properties resolved. Properties not set on the
// face are zero.
type Corner struct {
	// Vertex is NoVertex for the center corner of a radial triangulation.
	Vertex VertexID
	Pos    r3.Vec
	UV     [MaxUVChannels]r2.Vec
	// UVSet has bit i set when UV channel i is defined for the corner.
	UVSet    uint8
	Color    Color
	HasColor bool
}

// Triangulation is a triangle decomposition of a face. Triangles index
// into Corners.
type Triangulation struct {
	Corners   []Corner
	Triangles [][3]int
}

func (m *Mesh) corner(fr *faceRecord, v VertexID) Corner {
	c := Corner{Vertex: v, Pos: m.verts[v].pos}
	for ch := 0; ch < MaxUVChannels; ch++ {
		if uv, ok := fr.uvs[uvKey{v: v, ch: ch}]; ok {
			c.UV[ch] = uv
			c.UVSet |= 1 << ch
		}
	}
	c.Color, c.HasColor = fr.colors[v]
	return c
}

// FaceTriangles returns the triangles f decomposes into according to its
// triangulation mode. The mesh is not modified: the center of a radial
// decomposition is returned as a corner with Vertex set to NoVertex,
// placed at the mean corner position with the mean corner UVs.
func (m *Mesh) FaceTriangles(f FaceID) Triangulation {
	fr := m.face(f)
	n := len(fr.verts)
	var t Triangulation
	t.Corners = make([]Corner, n, n+1)
	for i, v := range fr.verts {
		t.Corners[i] = m.corner(fr, v)
	}
	switch {
	case n == 3:
		t.Triangles = [][3]int{{0, 1, 2}}

	case fr.mode == Radial:
		center := Corner{Vertex: NoVertex}
		w := 1 / float64(n)
		for _, c := range t.Corners[:n] {
			center.Pos = r3.Add(center.Pos, r3.Scale(w, c.Pos))
			for ch := 0; ch < MaxUVChannels; ch++ {
				center.UV[ch] = r2.Add(center.UV[ch], r2.Scale(w, c.UV[ch]))
			}
			center.UVSet |= c.UVSet
		}
		t.Corners = append(t.Corners, center)
		t.Triangles = make([][3]int, n)
		for i := range t.Triangles {
			t.Triangles[i] = [3]int{n, i, (i + 1) % n}
		}

	default:
		anchor := 0
		if n == 4 {
			p := t.Corners
			d02 := r3.Norm2(r3.Sub(p[0].Pos, p[2].Pos))
			d13 := r3.Norm2(r3.Sub(p[1].Pos, p[3].Pos))
			if d02 > d13 {
				anchor = 1
			}
		}
		t.Triangles = make([][3]int, n-2)
		for i := range t.Triangles {
			t.Triangles[i] = [3]int{anchor, (anchor + i + 1) % n, (anchor + i + 2) % n}
		}
	}
	return t
}

// Normal returns the unnormalized normal of f following its winding.
// Its length is twice the face area.
func (m *Mesh) Normal(f FaceID) r3.Vec {
	fr := m.face(f)
	p := func(i int) r3.Vec { return m.verts[fr.verts[i]].pos }
	n := len(fr.verts)
	if n == 3 {
		return r3.Cross(r3.Sub(p(1), p(0)), r3.Sub(p(2), p(0)))
	}
	c := m.Centroid(f)
	var sum r3.Vec
	for i := 0; i < n; i++ {
		sum = r3.Add(sum, r3.Cross(r3.Sub(p(i), c), r3.Sub(p((i+1)%n), c)))
	}
	return sum
}

// Area returns the area of f.
func (m *Mesh) Area(f FaceID) float64 {
	return r3.Norm(m.Normal(f)) / 2
}

// Centroid returns the mean position of the vertices of f.
func (m *Mesh) Centroid(f FaceID) r3.Vec {
	fr := m.face(f)
	set := make(d3.Set, len(fr.verts))
	for i, v := range fr.verts {
		set[i] = m.verts[v].pos
	}
	return set.Mean()
}

func (m *Mesh) checkCorner(f FaceID, v VertexID) error {
	if !m.faceOK(f) {
		return fmt.Errorf("face %d: %w", f, ErrDeadHandle)
	}
	for _, w := range m.faces[f].verts {
		if w == v {
			return nil
		}
	}
	return fmt.Errorf("vertex %d, face %d: %w", v, f, errNotInFace)
}

func checkChannel(ch int) error {
	if ch < 0 || ch >= MaxUVChannels {
		return fmt.Errorf("uv channel %d out of range [0,%d)", ch, MaxUVChannels)
	}
	return nil
}

// SetUV sets the UV of vertex v on face f for channel ch.
func (m *Mesh) SetUV(f FaceID, v VertexID, ch int, uv r2.Vec) error {
	if err := checkChannel(ch); err != nil {
		return fmt.Errorf("brep: set uv: %w", err)
	}
	if err := m.checkCorner(f, v); err != nil {
		return fmt.Errorf("brep: set uv: %w", err)
	}
	m.faces[f].setUV(v, ch, uv)
	return nil
}

// SetFaceUV sets the UVs of all corners of f for channel ch, in vertex
// order. A single uv is applied to every corner.
func (m *Mesh) SetFaceUV(f FaceID, ch int, uvs ...r2.Vec) error {
	if err := checkChannel(ch); err != nil {
		return fmt.Errorf("brep: set face uv: %w", err)
	}
	if !m.faceOK(f) {
		return fmt.Errorf("brep: set face uv %d: %w", f, ErrDeadHandle)
	}
	fr := &m.faces[f]
	if len(uvs) != 1 && len(uvs) != len(fr.verts) {
		return fmt.Errorf("brep: set face uv: got %d uvs for %d vertices", len(uvs), len(fr.verts))
	}
	for i, v := range fr.verts {
		uv := uvs[0]
		if len(uvs) > 1 {
			uv = uvs[i]
		}
		fr.setUV(v, ch, uv)
	}
	return nil
}

// SetVertexUV sets the UV of v for channel ch on every face using v.
func (m *Mesh) SetVertexUV(v VertexID, ch int, uv r2.Vec) error {
	if err := checkChannel(ch); err != nil {
		return fmt.Errorf("brep: set vertex uv: %w", err)
	}
	if !m.vertexOK(v) {
		return fmt.Errorf("brep: set vertex uv %d: %w", v, ErrDeadHandle)
	}
	for _, f := range m.verts[v].faces {
		m.faces[f].setUV(v, ch, uv)
	}
	return nil
}

// UV returns the UV of vertex v on face f for channel ch. Unset UVs are zero.
func (m *Mesh) UV(f FaceID, v VertexID, ch int) (r2.Vec, bool) {
	uv, ok := m.face(f).uvs[uvKey{v: v, ch: ch}]
	return uv, ok
}

// SetColor sets the color of vertex v on face f.
func (m *Mesh) SetColor(f FaceID, v VertexID, c Color) error {
	if err := m.checkCorner(f, v); err != nil {
		return fmt.Errorf("brep: set color: %w", err)
	}
	m.faces[f].setColor(v, c)
	return nil
}

// SetFaceColor sets the color of all corners of f.
func (m *Mesh) SetFaceColor(f FaceID, c Color) error {
	if !m.faceOK(f) {
		return fmt.Errorf("brep: set face color %d: %w", f, ErrDeadHandle)
	}
	fr := &m.faces[f]
	for _, v := range fr.verts {
		fr.setColor(v, c)
	}
	return nil
}

// ColorOf returns the color of vertex v on face f. Unset colors are zero.
func (m *Mesh) ColorOf(f FaceID, v VertexID) (Color, bool) {
	c, ok := m.face(f).colors[v]
	return c, ok
}

// SetAttr sets an attribute of f.
func (m *Mesh) SetAttr(f FaceID, k AttrKey, val float64) error {
	if !m.faceOK(f) {
		return fmt.Errorf("brep: set attr %d: %w", f, ErrDeadHandle)
	}
	m.faces[f].setAttr(k, val)
	return nil
}

// Attr returns an attribute of f.
func (m *Mesh) Attr(f FaceID, k AttrKey) (float64, bool) {
	val, ok := m.face(f).attrs[k]
	return val, ok
}

// CopyAttrs copies every attribute of src onto dst.
func (m *Mesh) CopyAttrs(dst, src FaceID) error {
	if !m.faceOK(dst) || !m.faceOK(src) {
		return fmt.Errorf("brep: copy attrs %d<-%d: %w", dst, src, ErrDeadHandle)
	}
	for k, val := range m.faces[src].attrs {
		m.faces[dst].setAttr(k, val)
	}
	return nil
}

// SetSubmesh sets the submesh f is exported into.
func (m *Mesh) SetSubmesh(f FaceID, submesh int) error {
	if !m.faceOK(f) {
		return fmt.Errorf("brep: set submesh %d: %w", f, ErrDeadHandle)
	}
	if submesh < 0 {
		return fmt.Errorf("brep: negative submesh %d", submesh)
	}
	m.faces[f].submesh = submesh
	return nil
}

// Submesh returns the submesh of f.
func (m *Mesh) Submesh(f FaceID) int {
	return m.face(f).submesh
}

// SetFaceMode sets how f is triangulated.
func (m *Mesh) SetFaceMode(f FaceID, mode TriangulationMode) error {
	if !m.faceOK(f) {
		return fmt.Errorf("brep: set face mode %d: %w", f, ErrDeadHandle)
	}
	if mode != Fan && mode != Radial {
		return fmt.Errorf("brep: invalid triangulation mode %d", mode)
	}
	m.faces[f].mode = mode
	return nil
}

// FaceMode returns how f is triangulated.
func (m *Mesh) FaceMode(f FaceID) TriangulationMode {
	return m.face(f).mode
}

// inherit copies the per-face properties that children of a split face
// carry over from their parent.
func inherit(dst, parent *faceRecord) {
	for k, val := range parent.attrs {
		dst.setAttr(k, val)
	}
	dst.submesh = parent.submesh
	dst.mode = parent.mode
}

// setCorner stores the properties of c on fr for vertex v.
func (fr *faceRecord) setCorner(v VertexID, c Corner) {
	for ch := 0; ch < MaxUVChannels; ch++ {
		if c.UVSet&(1<<ch) != 0 {
			fr.setUV(v, ch, c.UV[ch])
		}
	}
	if c.HasColor {
		fr.setColor(v, c.Color)
	}
}

// lerpCorner interpolates two corners. A property is set on the result
// when it is set on either input.
func lerpCorner(a, b Corner, t float64) Corner {
	c := Corner{
		Vertex:   NoVertex,
		Pos:      d3.Lerp(a.Pos, b.Pos, t),
		UVSet:    a.UVSet | b.UVSet,
		Color:    LerpColor(a.Color, b.Color, t),
		HasColor: a.HasColor || b.HasColor,
	}
	for ch := range c.UV {
		c.UV[ch] = d2.Lerp(a.UV[ch], b.UV[ch], t)
	}
	return c
}
