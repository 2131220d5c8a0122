package loading

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/taps"
	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

func triangle() (*readfiles.Facet, []r3.Vec) {
	mesh := &readfiles.Facet{
		Title:    "tri",
		Vertices: []r3.Vec{{X: 0}, {X: 1}, {Y: 1}},
		Tris:     [][3]int{{1, 2, 3}},
	}
	share := r3.Vec{Z: 0.5 / 3}
	return mesh, []r3.Vec{share, share, share}
}

func window() *taps.Window {
	return &taps.Window{
		Start: 1,
		Times: []float64{2.5, 2.75},
		Positions: []utils.Matrix{
			utils.NewMatrix(3, 3, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}),
		},
		Variables: []utils.Matrix{
			utils.NewMatrix(3, 5, []float64{
				1, 0, 0, 0, 2.5,
				1, 1, 0, 0, 3,
				2, 0, 2, 0, 4,
			}),
			utils.NewMatrix(3, 5, []float64{
				1, 0, 0, 1, 2.5,
				1, 0, 0, 0, 2.5,
				1, 0, 0, 0, 2.5,
			}),
		},
	}
}

func refs() *flowfields.ReferenceValues {
	return &flowfields.ReferenceValues{Gamma: 1.4, Rgas: 1, Rinf: 1, Pinf: 0.25, Tinf: 1, Ainf: 1, RefMach: 0.5}
}

func TestBuildZone(t *testing.T) {
	mesh, normals := triangle()
	{ // All five fields, gauge pressure and shifted time
		z, err := BuildZone("Front", mesh, normals, window(), flowfields.AllFields, refs(), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, z.NumPoints())
		assert.Equal(t, 2, z.NumTimes())
		assert.Equal(t, 0., z.Times[0])
		assert.InDelta(t, 0.25, z.Duration(), 1.e-15)
		nr, nc := z.Loading[0].Dims()
		assert.Equal(t, 5, nr)
		assert.Equal(t, 3, nc)
		assert.Equal(t, []float64{1, 1, 2}, z.Loading[0].Row(0))
		assert.Equal(t, []float64{0, 1, 0}, z.Loading[0].Row(1))
		assert.Equal(t, []float64{0, 0, 2}, z.Loading[0].Row(2))
		assert.Equal(t, []float64{1, 0, 0}, z.Loading[1].Row(3))
		// 0.4*2.5 - 0.25
		assert.InDelta(t, 0.75, z.Loading[0].Row(4)[0], 1.e-12)
		// 0.4*(3 - 0.5) - 0.25
		assert.InDelta(t, 0.75, z.Loading[0].Row(4)[1], 1.e-12)
		// 0.4*(2.5 - 0.5) - 0.25
		assert.InDelta(t, 0.55, z.Loading[1].Row(4)[0], 1.e-12)
		assert.Equal(t, "Pa", z.Meta.Units)
		assert.Equal(t, "flow_params", z.Meta.LoadingDataType)
	}
	{ // The window is not modified
		w := window()
		_, err := BuildZone("Front", mesh, normals, w, flowfields.AllFields, refs(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2.5, w.Times[0])
	}
	{ // Density only needs no reference values
		z, err := BuildZone("Front", mesh, normals, window(), []flowfields.FlowField{flowfields.Density}, nil, nil)
		require.NoError(t, err)
		nr, _ := z.Loading[1].Dims()
		assert.Equal(t, 1, nr)
	}
	{ // Pressure without reference values
		_, err := BuildZone("Front", mesh, normals, window(), flowfields.AllFields, nil, nil)
		var ce *types.ConfigurationError
		assert.True(t, errors.As(err, &ce))
	}
	{ // Point count mismatch between facet and stream
		mesh2, normals2 := triangle()
		mesh2.Vertices = append(mesh2.Vertices, r3.Vec{Z: 1})
		normals2 = append(normals2, r3.Vec{})
		_, err := BuildZone("Front", mesh2, normals2, window(), flowfields.AllFields, refs(), nil)
		var fe *types.FormatError
		assert.True(t, errors.As(err, &fe))
	}
	{ // Zero density yields NaN pressure, the zone is built and a warning logged
		w := window()
		w.Variables[1] = utils.NewMatrix(3, 5)
		core, logs := observer.New(zap.WarnLevel)
		z, err := BuildZone("Front", mesh, normals, w, flowfields.AllFields, refs(), zap.New(core))
		require.NoError(t, err)
		assert.True(t, utils.IsNan(z.Loading[1]))
		assert.Equal(t, 1, logs.FilterMessageSnippet("NaN").Len())
	}
	{ // Empty window
		w := &taps.Window{Start: 3}
		z, err := BuildZone("Front", mesh, normals, w, flowfields.AllFields, refs(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, z.NumTimes())
		assert.Equal(t, 0., z.Duration())
	}
}

func TestSnapshot(t *testing.T) {
	mesh, normals := triangle()
	z, err := BuildZone("Front", mesh, normals, window(), flowfields.AllFields, refs(), nil)
	require.NoError(t, err)
	sw := NewSnapshotWriter(t.TempDir())
	var _ ZoneWriter = sw
	{ // Round trip
		require.NoError(t, sw.WriteZone(z))
		back, err := ReadSnapshot(sw.Path("Front"))
		require.NoError(t, err)
		assert.Equal(t, z.Name, back.Name)
		assert.Equal(t, z.Vertices, back.Vertices)
		assert.Equal(t, z.Normals, back.Normals)
		assert.Equal(t, z.Tris, back.Tris)
		assert.Nil(t, back.Quads)
		assert.Equal(t, z.Fields, back.Fields)
		assert.Equal(t, z.Times, back.Times)
		assert.Equal(t, z.Meta, back.Meta)
		require.Len(t, back.Loading, 2)
		for i := range z.Loading {
			assert.Equal(t, z.Loading[i].DataP, back.Loading[i].DataP)
		}
	}
	{ // Garbage and missing files
		path := filepath.Join(t.TempDir(), "junk"+SnapshotExt)
		require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0644))
		_, err := ReadSnapshot(path)
		assert.Error(t, err)
		_, err = ReadSnapshot(filepath.Join(t.TempDir(), "missing"+SnapshotExt))
		var ioe *types.IOError
		assert.True(t, errors.As(err, &ioe))
	}
}
