package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/brep"
	"github.com/soypat/brep/form3/must3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Quad returns a mesh with a single square face on the XZ plane.
func Quad(size float64) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Quad(size), err
}

// Cube returns a sharp edged cube centered at the origin.
func Cube(size float64) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cube(size), err
}

// SquareGrid returns a width by height grid of square faces.
func SquareGrid(width, height int, cellSize float64) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.SquareGrid(width, height, cellSize), err
}

// TriangleGrid returns a grid of equilateral triangles.
func TriangleGrid(width, height int, sideSize float64) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.TriangleGrid(width, height, sideSize), err
}

// Cylinder returns a cylinder along Y with smooth sides and radial caps.
func Cylinder(radius, height float64, sides int) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cylinder(radius, height, sides), err
}

// CubeSphere returns a smooth sphere built from a projected subdivided cube.
func CubeSphere(radius float64, resolution int) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.CubeSphere(radius, resolution), err
}

// UVSphere returns a smooth latitude-longitude sphere.
func UVSphere(radius float64, rings, segments int) (m *brep.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.UVSphere(radius, rings, segments), err
}
