/*
Package brep implements a boundary-representation polygon mesh kernel
for procedural modeling.

A Mesh owns three arenas of vertices, edges and faces which reference
each other through integer handles. Every face knows its vertices and
the edges joining consecutive vertices; every vertex and edge knows the
faces using it. Edges are shared: two faces that touch along a vertex
pair always reference the same edge, which carries the smooth/sharp flag
used when exporting.

The editing operators (Triangulate, Extrude, SplitByField, Subdivide)
rewrite the adjacency in place. Between calls the mesh is always
consistent, which can be checked with Validate.

	m := brep.NewMesh()
	f, _ := m.AddPolygon(
		r3.Vec{X: 0.5, Z: 0.5}, r3.Vec{X: 0.5, Z: -0.5},
		r3.Vec{X: -0.5, Z: -0.5}, r3.Vec{X: -0.5, Z: 0.5},
	)
	sides, _ := m.Extrude([]brep.FaceID{f}, r3.Vec{Y: 1})
	m.SetSmooth(sides, true)

Render buffers are produced by the render package.
*/
package brep
