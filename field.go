package brep

import "gonum.org/v1/gonum/spatial/r3"

// ScalarField assigns a value to mesh vertices. EvaluateVertices writes
// the value of vs[i] into dst[i]; len(dst) == len(vs).
type ScalarField interface {
	EvaluateVertices(m *Mesh, vs []VertexID, dst []float64) error
}

// VertexFunc is a ScalarField evaluating one vertex at a time.
type VertexFunc func(m *Mesh, v VertexID) float64

// EvaluateVertices implements ScalarField.
func (fn VertexFunc) EvaluateVertices(m *Mesh, vs []VertexID, dst []float64) error {
	for i, v := range vs {
		dst[i] = fn(m, v)
	}
	return nil
}

// PositionFunc is a ScalarField over vertex positions.
type PositionFunc func(p r3.Vec) float64

// EvaluateVertices implements ScalarField.
func (fn PositionFunc) EvaluateVertices(m *Mesh, vs []VertexID, dst []float64) error {
	for i, v := range vs {
		dst[i] = fn(m.VertexPos(v))
	}
	return nil
}
