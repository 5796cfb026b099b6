package render

import (
	"fmt"
	"sort"

	"github.com/soypat/brep"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// corner is a face corner of the mesh being exported.
type corner struct {
	v brep.VertexID
	f brep.FaceID
}

type exporter struct {
	m        *brep.Mesh
	channels []int
	buf      *Buffer
	index    map[corner]uint32
	// normals accumulates area weighted normals in float64.
	normals []r3.Vec
}

// Export flattens m into a render buffer. Faces meeting at a vertex share
// one output vertex when they are connected through smooth edges around
// that vertex; every other face gets its own copy, producing a seam. The
// UVs and color of a shared output vertex are the mean of the values the
// connected faces hold for the vertex, unset values counting as zero.
//
// channels selects the UV channels exported. All channels are exported
// when none are given.
func Export(m *brep.Mesh, channels ...int) (*Buffer, error) {
	if len(channels) == 0 {
		channels = make([]int, brep.MaxUVChannels)
		for i := range channels {
			channels[i] = i
		}
	}
	seen := make(map[int]bool)
	uniq := channels[:0:0]
	for _, ch := range channels {
		if ch < 0 || ch >= brep.MaxUVChannels {
			return nil, fmt.Errorf("render: export: uv channel %d out of range [0,%d)", ch, brep.MaxUVChannels)
		}
		if !seen[ch] {
			seen[ch] = true
			uniq = append(uniq, ch)
		}
	}
	e := exporter{
		m:        m,
		channels: uniq,
		buf:      &Buffer{UVs: make(map[int][]ms2.Vec, len(uniq))},
		index:    make(map[corner]uint32),
	}
	for _, ch := range uniq {
		e.buf.UVs[ch] = nil
	}
	for _, v := range m.Vertices() {
		e.vertexGroups(v)
	}
	for _, f := range m.Faces() {
		e.face(f)
	}
	e.finishNormals()
	return e.buf, nil
}

// vertexGroups allocates one output vertex per group of faces around v
// connected by smooth edges incident to v.
func (e *exporter) vertexGroups(v brep.VertexID) {
	g := simple.NewUndirectedGraph()
	for _, f := range e.m.VertexFaces(v) {
		if g.Node(int64(f)) == nil {
			g.AddNode(simple.Node(f))
		}
	}
	if g.Nodes().Len() == 0 {
		return
	}
	for _, edge := range e.m.VertexEdges(v) {
		if !e.m.EdgeSmooth(edge) {
			continue
		}
		faces := e.m.EdgeFaces(edge)
		// Non-manifold edges only join their first two faces.
		if len(faces) < 2 || faces[0] == faces[1] {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(faces[0]), T: simple.Node(faces[1])})
	}
	groups := topo.ConnectedComponents(g)
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].ID() < group[j].ID() })
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0].ID() < groups[j][0].ID() })
	for _, group := range groups {
		e.shared(v, group)
	}
}

// shared appends the output vertex of a face group around v.
func (e *exporter) shared(v brep.VertexID, group []graph.Node) {
	w := 1 / float64(len(group))
	var (
		uvs   [brep.MaxUVChannels]r2.Vec
		color brep.Color
	)
	for _, n := range group {
		f := brep.FaceID(n.ID())
		for _, ch := range e.channels {
			uv, _ := e.m.UV(f, v, ch)
			uvs[ch] = r2.Add(uvs[ch], r2.Scale(w, uv))
		}
		c, _ := e.m.ColorOf(f, v)
		color = color.Add(c.Scale(w))
	}
	idx := e.appendVertex(e.m.VertexPos(v), uvs, color)
	for _, n := range group {
		e.index[corner{v: v, f: brep.FaceID(n.ID())}] = idx
	}
}

func (e *exporter) appendVertex(p r3.Vec, uvs [brep.MaxUVChannels]r2.Vec, c brep.Color) uint32 {
	b := e.buf
	idx := uint32(len(b.Positions))
	b.Positions = append(b.Positions, vec3(p))
	for _, ch := range e.channels {
		b.UVs[ch] = append(b.UVs[ch], ms2.Vec{X: float32(uvs[ch].X), Y: float32(uvs[ch].Y)})
	}
	b.Colors = append(b.Colors, [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)})
	e.normals = append(e.normals, r3.Vec{})
	return idx
}

// face appends the triangles of f to its submesh index list.
func (e *exporter) face(f brep.FaceID) {
	plan := e.m.FaceTriangles(f)
	ids := make([]uint32, len(plan.Corners))
	for i, c := range plan.Corners {
		idx, ok := e.index[corner{v: c.Vertex, f: f}]
		if !ok {
			// Corners with no vertex in the mesh, such as the center of
			// a radial face, belong to this face only.
			idx = e.appendVertex(c.Pos, c.UV, c.Color)
		}
		ids[i] = idx
	}
	s := e.m.Submesh(f)
	b := e.buf
	for len(b.Submeshes) <= s {
		b.Submeshes = append(b.Submeshes, []uint32{})
	}
	for _, tri := range plan.Triangles {
		a, bb, c := ids[tri[0]], ids[tri[1]], ids[tri[2]]
		b.Submeshes[s] = append(b.Submeshes[s], a, bb, c)
		p0, p1, p2 := plan.Corners[tri[0]].Pos, plan.Corners[tri[1]].Pos, plan.Corners[tri[2]].Pos
		n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
		e.normals[a] = r3.Add(e.normals[a], n)
		e.normals[bb] = r3.Add(e.normals[bb], n)
		e.normals[c] = r3.Add(e.normals[c], n)
	}
}

func (e *exporter) finishNormals() {
	b := e.buf
	b.Normals = make([]ms3.Vec, len(e.normals))
	for i, n := range e.normals {
		if n == (r3.Vec{}) {
			continue
		}
		b.Normals[i] = vec3(r3.Unit(n))
	}
}

func vec3(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
