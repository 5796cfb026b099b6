package sdfexp

import (
	"errors"

	"github.com/soypat/brep"
	"github.com/soypat/glgl/math/ms3"
)

// SDF3 is a signed distance field evaluated over batches of float32
// positions, the form GPU friendly evaluators take.
type SDF3 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length. Resulting distances are stored
	// in dist.
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms3.Box
}

const batchSize = 256

var _ brep.ScalarField = (*batchField)(nil)

type batchField struct {
	s        SDF3
	userData any
	pos      []ms3.Vec
	dist     []float32
}

// Batch returns a scalar field evaluating s in batches. userData is passed
// through to every Evaluate call. The returned field reuses its buffers and
// must not be used concurrently.
func Batch(s SDF3, userData any) brep.ScalarField {
	return &batchField{
		s:        s,
		userData: userData,
		pos:      make([]ms3.Vec, batchSize),
		dist:     make([]float32, batchSize),
	}
}

func (f *batchField) EvaluateVertices(m *brep.Mesh, vs []brep.VertexID, dst []float64) error {
	if len(dst) < len(vs) {
		return errors.New("destination shorter than vertex list")
	}
	for len(vs) > 0 {
		n := min(len(vs), batchSize)
		pos, dist := f.pos[:n], f.dist[:n]
		for i, v := range vs[:n] {
			p := m.VertexPos(v)
			pos[i] = ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
		}
		if err := f.s.Evaluate(pos, dist, f.userData); err != nil {
			return err
		}
		for i, d := range dist {
			dst[i] = float64(d)
		}
		vs, dst = vs[n:], dst[n:]
	}
	return nil
}

// Sphere is a sphere of radius R centered at Center.
type Sphere struct {
	Center ms3.Vec
	R      float32
}

func (s Sphere) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	r := s.R
	for i, p := range pos {
		dist[i] = ms3.Norm(ms3.Sub(p, s.Center)) - r
	}
	return nil
}

func (s Sphere) Bounds() ms3.Box {
	r := ms3.Vec{X: s.R, Y: s.R, Z: s.R}
	return ms3.Box{Min: ms3.Sub(s.Center, r), Max: ms3.Add(s.Center, r)}
}

// Plane is the half space below the plane through Point with unit normal N.
type Plane struct {
	Point ms3.Vec
	N     ms3.Vec
}

func (pl Plane) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	for i, p := range pos {
		dist[i] = ms3.Dot(ms3.Sub(p, pl.Point), pl.N)
	}
	return nil
}

// Bounds returns an infinite box.
func (pl Plane) Bounds() ms3.Box {
	const inf = 3.4e38
	return ms3.Box{Min: ms3.Vec{X: -inf, Y: -inf, Z: -inf}, Max: ms3.Vec{X: inf, Y: inf, Z: inf}}
}
