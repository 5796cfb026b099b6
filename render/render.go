package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
)

// Renderer streams triangles.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1024)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// submeshReader reads the triangles of one submesh of a Buffer.
type submeshReader struct {
	b       *Buffer
	indices []uint32
}

// Reader returns a Renderer over the triangles of a submesh.
func (b *Buffer) Reader(submesh int) Renderer {
	var indices []uint32
	if submesh >= 0 && submesh < len(b.Submeshes) {
		indices = b.Submeshes[submesh]
	}
	return &submeshReader{b: b, indices: indices}
}

func (r *submeshReader) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) && len(r.indices) >= 3 {
		for j := 0; j < 3; j++ {
			dst[n][j] = r.b.Positions[r.indices[j]]
		}
		r.indices = r.indices[3:]
		n++
	}
	if len(r.indices) < 3 {
		err = io.EOF
	}
	return n, err
}
