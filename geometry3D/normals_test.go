package geometry3D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/types"
)

const tol = 1.e-12

func assertVec(t *testing.T, expected, got r3.Vec, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, expected.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, expected.Z, got.Z, tol, msgAndArgs...)
}

func square() []r3.Vec {
	return []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}
}

func TestVertexNormals(t *testing.T) {
	{ // Unit right triangle
		f := &readfiles.Facet{
			Vertices: square()[:3],
			Tris:     [][3]int{{1, 2, 3}},
		}
		normals, err := VertexNormals(f)
		require.NoError(t, err)
		require.Len(t, normals, 3)
		for _, n := range normals {
			assertVec(t, r3.Vec{Z: 0.5 / 3}, n)
		}
	}
	{ // Unit square quad uses the diagonals
		f := &readfiles.Facet{
			Vertices: square()[:4],
			Quads:    [][4]int{{1, 2, 3, 4}},
		}
		normals, err := VertexNormals(f)
		require.NoError(t, err)
		for _, n := range normals {
			assertVec(t, r3.Vec{Z: 0.25}, n)
		}
	}
	{ // Triangles and quads accumulate into the same table
		f := &readfiles.Facet{
			Vertices: square(),
			Quads:    [][4]int{{1, 2, 3, 4}},
			Tris:     [][3]int{{2, 5, 3}},
		}
		normals, err := VertexNormals(f)
		require.NoError(t, err)
		assertVec(t, r3.Vec{Z: 0.25}, normals[0])
		assertVec(t, r3.Vec{Z: 0.25 + 1./6}, normals[1])
		assertVec(t, r3.Vec{Z: 0.25 + 1./6}, normals[2])
		assertVec(t, r3.Vec{Z: 0.25}, normals[3])
		assertVec(t, r3.Vec{Z: 1. / 6}, normals[4])
		unit := Unit(normals)
		for _, n := range unit {
			assert.InDelta(t, 1., r3.Norm(n), tol)
		}
	}
	{ // Collinear triangle
		f := &readfiles.Facet{
			Vertices: []r3.Vec{{X: 0}, {X: 1}, {X: 2}},
			Tris:     [][3]int{{1, 2, 3}},
		}
		_, err := VertexNormals(f)
		var dge *types.DegenerateGeometryError
		require.True(t, errors.As(err, &dge))
		assert.Equal(t, "triangle", dge.Kind)
		assert.Equal(t, 0, dge.Face)
	}
	{ // Coincident quad, second in its block
		f := &readfiles.Facet{
			Vertices: square(),
			Quads:    [][4]int{{1, 2, 3, 4}, {5, 5, 5, 5}},
		}
		_, err := VertexNormals(f)
		var dge *types.DegenerateGeometryError
		require.True(t, errors.As(err, &dge))
		assert.Equal(t, "quad", dge.Kind)
		assert.Equal(t, 1, dge.Face)
	}
	{ // Out of range index on a hand built facet
		f := &readfiles.Facet{
			Vertices: square()[:3],
			Tris:     [][3]int{{1, 2, 4}},
		}
		_, err := VertexNormals(f)
		var fe *types.FormatError
		assert.True(t, errors.As(err, &fe))
	}
}

func TestTransforms(t *testing.T) {
	{ // Scale by c then 1/c restores the coordinates
		v := []r3.Vec{{X: 1.5, Y: -2, Z: 3.25}, {X: 1e-3, Y: 7, Z: 0}}
		c := 0.0254
		back := Scale(Scale(v, c), 1/c)
		for i := range v {
			assertVec(t, v[i], back[i])
		}
		assert.Equal(t, 1.5, v[0].X)
	}
	{ // Rotation about primary axes
		r, err := Rotate([]r3.Vec{{X: 1}}, AxisZ, 90)
		require.NoError(t, err)
		assertVec(t, r3.Vec{Y: 1}, r[0])
		r, err = Rotate([]r3.Vec{{Y: 1}}, AxisX, -90)
		require.NoError(t, err)
		assertVec(t, r3.Vec{Z: -1}, r[0])
		r, err = Rotate([]r3.Vec{{Z: 1}}, AxisY, 90)
		require.NoError(t, err)
		assertVec(t, r3.Vec{X: 1}, r[0])
	}
	{
		_, err := Rotate([]r3.Vec{{X: 1}}, Axis("w"), 90)
		assert.True(t, errors.Is(err, ErrUnknownAxis))
		a, err := ParseAxis("Y")
		require.NoError(t, err)
		assert.Equal(t, AxisY, a)
		_, err = ParseAxis("q")
		assert.True(t, errors.Is(err, ErrUnknownAxis))
	}
}
