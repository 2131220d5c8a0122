package geometry3D

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/types"
)

// VertexNormals accumulates area-weighted face normals onto the vertices of f.
// Each face adds 0.5*cross/arity to every one of its vertices, where cross is
// the product of two in-plane edge vectors. Triangles use (b-a)x(c-a), quads
// the diagonals (c-a)x(d-b). The result is not normalized; see Unit.
func VertexNormals(f *readfiles.Facet) (normals []r3.Vec, err error) {
	normals = make([]r3.Vec, f.NumVertices())
	for k, tri := range f.Tris {
		a, b, c, err := corners3(f, tri)
		if err != nil {
			return nil, err
		}
		cross := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if err = accumulate(normals, tri[:], cross, "triangle", k); err != nil {
			return nil, err
		}
	}
	for k, quad := range f.Quads {
		a, b, c, d, err := corners4(f, quad)
		if err != nil {
			return nil, err
		}
		cross := r3.Cross(r3.Sub(c, a), r3.Sub(d, b))
		if err = accumulate(normals, quad[:], cross, "quad", k); err != nil {
			return nil, err
		}
	}
	return
}

func accumulate(normals []r3.Vec, face []int, cross r3.Vec, kind string, k int) error {
	if r3.Norm(cross) == 0 {
		return &types.DegenerateGeometryError{Kind: kind, Face: k}
	}
	share := r3.Scale(0.5/float64(len(face)), cross)
	for _, n := range face {
		normals[n-1] = r3.Add(normals[n-1], share)
	}
	return nil
}

func vertex(f *readfiles.Facet, n int) (v r3.Vec, err error) {
	if n < 1 || n > f.NumVertices() {
		return v, types.NewFormatError("", 0, "vertex index %d outside [1, %d]", n, f.NumVertices())
	}
	return f.Vertices[n-1], nil
}

func corners3(f *readfiles.Facet, face [3]int) (a, b, c r3.Vec, err error) {
	var v [3]r3.Vec
	for i, n := range face {
		if v[i], err = vertex(f, n); err != nil {
			return
		}
	}
	return v[0], v[1], v[2], nil
}

func corners4(f *readfiles.Facet, face [4]int) (a, b, c, d r3.Vec, err error) {
	var v [4]r3.Vec
	for i, n := range face {
		if v[i], err = vertex(f, n); err != nil {
			return
		}
	}
	return v[0], v[1], v[2], v[3], nil
}

// Unit returns a normalized copy of normals. Zero vectors stay zero.
func Unit(normals []r3.Vec) (unit []r3.Vec) {
	unit = make([]r3.Vec, len(normals))
	for i, n := range normals {
		if r3.Norm(n) == 0 {
			continue
		}
		unit[i] = r3.Unit(n)
	}
	return
}
