package brep

import (
	"errors"
	"math"
)

const (
	// MaxUVChannels is the number of UV channels a face corner may carry.
	MaxUVChannels = 8
	// DefaultSplitEpsilon replaces the field values of suppressed islands
	// in SplitByField when SplitOptions.Epsilon is zero.
	DefaultSplitEpsilon = 0.001
	// DefaultAutoSmoothAngle is the dihedral angle threshold in degrees
	// commonly passed to AutoSmooth.
	DefaultAutoSmoothAngle = 30.0
)

const (
	pi = math.Pi
)

var (
	// ErrDeadHandle is returned when a vertex, edge or face handle does not
	// reference a live element of the mesh.
	ErrDeadHandle = errors.New("invalid or removed handle")
	// ErrDegenerateFace is returned when a face would have fewer than three
	// vertices or an edge joining a vertex to itself.
	ErrDegenerateFace = errors.New("degenerate face")
	// ErrNotTriangle is returned by operators that require a triangulated mesh.
	ErrNotTriangle = errors.New("face is not a triangle")
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Color is a linear RGBA color. Colors are averaged and interpolated
// component-wise by the operators and the exporter.
type Color struct {
	R, G, B, A float64
}

// Add adds two colors component-wise.
func (c Color) Add(d Color) Color {
	return Color{R: c.R + d.R, G: c.G + d.G, B: c.B + d.B, A: c.A + d.A}
}

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A * f}
}

// LerpColor does a linear interpolation from a to b, t = [0,1].
func LerpColor(a, b Color, t float64) Color {
	return a.Add(b.Add(a.Scale(-1)).Scale(t))
}
