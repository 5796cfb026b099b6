// Package sdfexp connects signed distance fields to brep meshes. Fields
// drive SplitByField and marching cubes turns sdfx shapes into meshes.
package sdfexp

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ brep.ScalarField = sdfxField{}

type sdfxField struct {
	s sdf.SDF3
}

// SDFX returns a scalar field evaluating s at vertex positions. Negative
// values lie inside the shape.
func SDFX(s sdf.SDF3) brep.ScalarField {
	return sdfxField{s: s}
}

func (f sdfxField) EvaluateVertices(m *brep.Mesh, vs []brep.VertexID, dst []float64) error {
	if len(dst) < len(vs) {
		return errors.New("destination shorter than vertex list")
	}
	for i, v := range vs {
		p := m.VertexPos(v)
		dst[i] = f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
	}
	return nil
}

// Mesh renders s with uniform marching cubes over cells cells along the
// longest side of its bounding box and returns the result as a mesh.
// Triangles share identical vertices and every edge is sharp; use
// AutoSmooth to recover smooth shading.
func Mesh(s sdf.SDF3, cells int) (*brep.Mesh, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("sdfexp: cells must be positive, got %d", cells)
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(tris) == 0 {
		return nil, errors.New("sdfexp: shape rendered no triangles")
	}
	soup := make([][3]r3.Vec, len(tris))
	for i, tri := range tris {
		for j := 0; j < 3; j++ {
			soup[i][j] = r3.Vec{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	m, err := brep.FromTriangles(soup)
	if err != nil {
		return nil, fmt.Errorf("sdfexp: %w", err)
	}
	return m, nil
}
