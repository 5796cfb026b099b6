package render

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/brep"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxUint16Vertices is the largest vertex count addressable with 16 bit
// indices.
const MaxUint16Vertices = 65535

// IndexFormat is the width of the indices a Buffer needs.
type IndexFormat uint8

const (
	// Uint16 indices address up to MaxUint16Vertices vertices.
	Uint16 IndexFormat = iota
	// Uint32 indices are needed by larger buffers.
	Uint32
)

func (f IndexFormat) String() string {
	switch f {
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	}
	return "IndexFormat(?)"
}

// Buffer is a flat render buffer. Positions, Normals, Colors and every
// UVs entry are parallel arrays with one element per output vertex.
// Submeshes holds one triangle index list per submesh.
type Buffer struct {
	Positions []ms3.Vec
	Normals   []ms3.Vec
	// UVs is keyed by UV channel.
	UVs       map[int][]ms2.Vec
	Colors    [][4]float32
	Submeshes [][]uint32
}

// Len returns the number of output vertices.
func (b *Buffer) Len() int { return len(b.Positions) }

// IndexFormat returns the narrowest index width able to address every
// vertex of the buffer.
func (b *Buffer) IndexFormat() IndexFormat {
	if len(b.Positions) > MaxUint16Vertices {
		return Uint32
	}
	return Uint16
}

// Indices16 returns the indices of a submesh narrowed to 16 bits.
func (b *Buffer) Indices16(submesh int) ([]uint16, error) {
	if b.IndexFormat() != Uint16 {
		return nil, fmt.Errorf("render: %d vertices need 32 bit indices", len(b.Positions))
	}
	if submesh < 0 || submesh >= len(b.Submeshes) {
		return nil, fmt.Errorf("render: submesh %d out of range [0,%d)", submesh, len(b.Submeshes))
	}
	src := b.Submeshes[submesh]
	dst := make([]uint16, len(src))
	for i, idx := range src {
		dst[i] = uint16(idx)
	}
	return dst, nil
}

// Triangles returns the triangles of a submesh.
func (b *Buffer) Triangles(submesh int) []ms3.Triangle {
	tris, _ := RenderAll(b.Reader(submesh))
	return tris
}

// Bounds returns the bounding box of the buffer positions.
func (b *Buffer) Bounds() ms3.Box {
	if len(b.Positions) == 0 {
		return ms3.Box{}
	}
	box := ms3.Box{Min: b.Positions[0], Max: b.Positions[0]}
	for _, p := range b.Positions[1:] {
		box.Min = ms3.MinElem(box.Min, p)
		box.Max = ms3.MaxElem(box.Max, p)
	}
	return box
}

// Validate checks that parallel arrays agree in length, that every
// position and normal is finite and that every index is in range.
func (b *Buffer) Validate() error {
	n := len(b.Positions)
	if len(b.Normals) != n || len(b.Colors) != n {
		return fmt.Errorf("render: %d positions, %d normals, %d colors", n, len(b.Normals), len(b.Colors))
	}
	for ch, uvs := range b.UVs {
		if len(uvs) != n {
			return fmt.Errorf("render: uv channel %d has %d entries for %d positions", ch, len(uvs), n)
		}
	}
	for i := range b.Positions {
		if !finite(b.Positions[i]) || !finite(b.Normals[i]) {
			return fmt.Errorf("render: vertex %d is not finite", i)
		}
	}
	for s, indices := range b.Submeshes {
		if len(indices)%3 != 0 {
			return fmt.Errorf("render: submesh %d has %d indices", s, len(indices))
		}
		for _, idx := range indices {
			if int(idx) >= n {
				return fmt.Errorf("render: submesh %d index %d out of range", s, idx)
			}
		}
	}
	return nil
}

// Indexed returns the buffer as indexed triangles ready to be rebuilt into
// a mesh with brep.FromIndexed. Seams stay sharp and shared vertices come
// back smooth.
func (b *Buffer) Indexed() brep.Indexed {
	src := brep.Indexed{
		Positions: make([]r3.Vec, len(b.Positions)),
		Submeshes: make([][]int, len(b.Submeshes)),
	}
	for i, p := range b.Positions {
		src.Positions[i] = r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
	}
	for s, indices := range b.Submeshes {
		src.Submeshes[s] = make([]int, len(indices))
		for i, idx := range indices {
			src.Submeshes[s][i] = int(idx)
		}
	}
	for ch, uvs := range b.UVs {
		if ch < 0 || ch >= brep.MaxUVChannels || len(uvs) != len(b.Positions) {
			continue
		}
		src.UVs[ch] = make([]r2.Vec, len(uvs))
		for i, uv := range uvs {
			src.UVs[ch][i] = r2.Vec{X: float64(uv.X), Y: float64(uv.Y)}
		}
	}
	if len(b.Colors) == len(b.Positions) {
		src.Colors = make([]brep.Color, len(b.Colors))
		for i, c := range b.Colors {
			src.Colors[i] = brep.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
		}
	}
	return src
}

func finite(v ms3.Vec) bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0) &&
		!math32.IsNaN(v.Z) && !math32.IsInf(v.Z, 0)
}
