package flowfields

import (
	"strings"

	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

type FlowField uint8

var fieldNames = []string{
	"Density",
	"XMomentum",
	"YMomentum",
	"ZMomentum",
	"Pressure",
}

func (ff FlowField) String() string {
	if int(ff) >= len(fieldNames) {
		return "Unknown"
	}
	return fieldNames[int(ff)]
}

const (
	Density FlowField = iota
	XMomentum
	YMomentum
	ZMomentum
	Pressure // 4
)

// AllFields in loading order
var AllFields = []FlowField{Density, XMomentum, YMomentum, ZMomentum, Pressure}

func NewFlowField(name string) (ff FlowField, err error) {
	for i, n := range fieldNames {
		if n == strings.TrimSpace(name) {
			return FlowField(i), nil
		}
	}
	return 0, &types.UnknownFieldError{Name: name}
}

// ParseFields parses a selection list, failing on the first unknown name
func ParseFields(names []string) (fields []FlowField, err error) {
	fields = make([]FlowField, 0, len(names))
	for _, name := range names {
		var ff FlowField
		if ff, err = NewFlowField(name); err != nil {
			return nil, err
		}
		fields = append(fields, ff)
	}
	return
}

// columns is the number of conservative variables ff reads from each point
func (ff FlowField) columns() int {
	switch ff {
	case Density:
		return 1
	case XMomentum:
		return 2
	case YMomentum:
		return 3
	case ZMomentum:
		return 4
	default:
		return 5
	}
}

// Derive evaluates ff at every point of every timestep. vars[t] is npts x nq
// with columns rho, rhoU, rhoV, rhoW, E. Pressure needs ref for gamma.
func Derive(ff FlowField, vars []utils.Matrix, ref *ReferenceValues) (f [][]float64, err error) {
	if int(ff) >= len(fieldNames) {
		return nil, &types.UnknownFieldError{Name: ff.String()}
	}
	if ff == Pressure && ref == nil {
		return nil, &types.ConfigurationError{Msg: "reference values are required to derive Pressure"}
	}
	f = make([][]float64, len(vars))
	for t, q := range vars {
		npts, nq := q.Dims()
		if nq < ff.columns() {
			return nil, types.NewRecordFormatError("", t,
				"%s needs %d variables per point, found %d", ff, ff.columns(), nq)
		}
		f[t] = make([]float64, npts)
		for i := 0; i < npts; i++ {
			f[t][i] = ref.GetFlowFieldBase(q.Row(i), ff)
		}
	}
	return
}

// GetFlowFieldBase evaluates ff from the conservative variables of one point.
// ref may be nil for every field except Pressure.
func (ref *ReferenceValues) GetFlowFieldBase(qq []float64, ff FlowField) (f float64) {
	switch ff {
	case Density:
		f = qq[0]
	case XMomentum:
		f = qq[1]
	case YMomentum:
		f = qq[2]
	case ZMomentum:
		f = qq[3]
	case Pressure:
		var (
			rho, rhoU, rhoV, rhoW, E = qq[0], qq[1], qq[2], qq[3], qq[4]
			GM1                      = ref.Gamma - 1.
			q                        = 0.5 * (rhoU*rhoU + rhoV*rhoV + rhoW*rhoW) / rho
		)
		f = GM1 * (E - q)
	}
	return
}
