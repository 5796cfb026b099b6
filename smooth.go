package brep

import (
	"github.com/soypat/brep/internal/d3"
)

// SetSmooth sets the smooth flag of every edge of faces whose incident
// faces are all in faces. Edges on the border of the set are left alone.
func (m *Mesh) SetSmooth(faces []FaceID, smooth bool) {
	in := make(map[FaceID]bool, len(faces))
	for _, f := range faces {
		if m.faceOK(f) {
			in[f] = true
		}
	}
	for f := range in {
	EDGES:
		for _, e := range m.faces[f].edges {
			er := &m.edges[e]
			for _, g := range er.faces {
				if !in[g] {
					continue EDGES
				}
			}
			er.smooth = smooth
		}
	}
}

// SetAllSmooth marks every edge smooth.
func (m *Mesh) SetAllSmooth() { m.setAll(true) }

// SetAllSharp marks every edge sharp.
func (m *Mesh) SetAllSharp() { m.setAll(false) }

func (m *Mesh) setAll(smooth bool) {
	for i := range m.edges {
		if m.edges[i].alive {
			m.edges[i].smooth = smooth
		}
	}
}

// AutoSmooth marks an edge joining exactly two faces smooth when the angle
// between the face normals is below angleDegrees and sharp otherwise.
// An edge next to a face without a defined normal becomes sharp. Edges
// with fewer or more than two faces are not changed.
func (m *Mesh) AutoSmooth(angleDegrees float64) {
	threshold := DtoR(angleDegrees)
	for i := range m.edges {
		er := &m.edges[i]
		if !er.alive || len(er.faces) != 2 {
			continue
		}
		angle, ok := d3.Angle(m.Normal(er.faces[0]), m.Normal(er.faces[1]))
		er.smooth = ok && angle < threshold
	}
}
