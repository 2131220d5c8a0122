package flowfields

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

func air() *ReferenceValues {
	return &ReferenceValues{
		Gamma:   1.4,
		Rgas:    287.05,
		Rinf:    1.225,
		Pinf:    101325,
		Tinf:    288.15,
		Ainf:    340.29,
		RefMach: 0.2,
	}
}

func TestFlowFieldNames(t *testing.T) {
	{
		for i, name := range []string{"Density", "XMomentum", "YMomentum", "ZMomentum", "Pressure"} {
			ff, err := NewFlowField(name)
			require.NoError(t, err)
			assert.Equal(t, FlowField(i), ff)
			assert.Equal(t, name, ff.String())
		}
	}
	{ // Unknown names
		_, err := NewFlowField("Vorticity")
		var uf *types.UnknownFieldError
		require.True(t, errors.As(err, &uf))
		assert.Equal(t, "Vorticity", uf.Name)
		_, err = NewFlowField("density")
		assert.Error(t, err)
	}
	{
		fields, err := ParseFields([]string{"Pressure", " Density"})
		require.NoError(t, err)
		assert.Equal(t, []FlowField{Pressure, Density}, fields)
		_, err = ParseFields([]string{"Density", "Mach"})
		var uf *types.UnknownFieldError
		assert.True(t, errors.As(err, &uf))
	}
}

func TestDerive(t *testing.T) {
	vars := []utils.Matrix{
		utils.NewMatrix(2, 5, []float64{
			1, 0, 0, 0, 2.5,
			2, 1, 2, 2, 10,
		}),
		utils.NewMatrix(2, 5, []float64{
			1, 3, 0, 0, 5,
			1, 0, 0, 4, 9,
		}),
	}
	{ // Pressure at rest is (gamma-1)*E
		p, err := Derive(Pressure, vars[:1], air())
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p[0][0], 1.e-12)
		// (0.4)(10 - 0.5*9/2)
		assert.InDelta(t, 0.4*(10-2.25), p[0][1], 1.e-12)
		rest := []utils.Matrix{utils.NewMatrix(1, 5, []float64{1, 0, 0, 0, 1.5})}
		p, err = Derive(Pressure, rest, air())
		require.NoError(t, err)
		assert.InDelta(t, 0.6, p[0][0], 1.e-12)
	}
	{ // Direct fields read their column
		rho, err := Derive(Density, vars, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1, 2}, {1, 1}}, rho)
		xm, err := Derive(XMomentum, vars, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 1}, {3, 0}}, xm)
		ym, err := Derive(YMomentum, vars, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 2}, {0, 0}}, ym)
		zm, err := Derive(ZMomentum, vars, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 2}, {0, 4}}, zm)
	}
	{ // Pressure without reference values
		_, err := Derive(Pressure, vars, nil)
		var ce *types.ConfigurationError
		assert.True(t, errors.As(err, &ce))
	}
	{ // Too few variables for the requested field
		short := []utils.Matrix{utils.NewMatrix(1, 3, []float64{1, 0, 0})}
		_, err := Derive(ZMomentum, short, nil)
		var fe *types.FormatError
		assert.True(t, errors.As(err, &fe))
		_, err = Derive(YMomentum, short, nil)
		assert.NoError(t, err)
	}
	{
		_, err := Derive(FlowField(9), vars, air())
		var uf *types.UnknownFieldError
		assert.True(t, errors.As(err, &uf))
	}
}

func TestReferenceValidate(t *testing.T) {
	assert.NoError(t, air().Validate())
	{
		rv := air()
		rv.Gamma = 1
		assert.Error(t, rv.Validate())
	}
	{
		rv := air()
		rv.Pinf = 0
		assert.NoError(t, rv.Validate())
		rv.Pinf = -1
		assert.Error(t, rv.Validate())
	}
	{
		rv := air()
		rv.Tinf = math.Inf(1)
		assert.Error(t, rv.Validate())
		rv = air()
		rv.RefMach = math.NaN()
		assert.Error(t, rv.Validate())
	}
	{ // Missing constants read as zero
		rv := air()
		rv.Ainf = 0
		assert.Error(t, rv.Validate())
	}
}
