package loading

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/taps"
	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

// Meta is carried through to the acoustic input writer unchanged
type Meta struct {
	Units            string
	IsStructured     bool
	CenteredType     string
	FloatType        string
	HasIBlank        bool
	GeometryType     string
	GeometryTimeType string
	GeometryComment  string
	LoadingTimeType  string
	LoadingDataType  string
	LoadingRefFrame  string
	LoadingComment   string
}

// DefaultMeta describes an unstructured, node centered permeable surface with
// constant geometry and aperiodic loading.
func DefaultMeta() Meta {
	return Meta{
		Units:            "Pa",
		IsStructured:     false,
		CenteredType:     "node",
		FloatType:        "single",
		HasIBlank:        false,
		GeometryType:     "geometry",
		GeometryTimeType: "constant",
		GeometryComment:  "Unstructured file - patch",
		LoadingTimeType:  "aperiodic",
		LoadingDataType:  "flow_params",
		LoadingRefFrame:  "ground_fixed",
		LoadingComment:   "Unstructured file - loading",
	}
}

// Zone is one converted surface: geometry plus time resolved loading.
// Loading[t] is len(Fields) x NPts, one row per field.
type Zone struct {
	Name     string
	Vertices []r3.Vec
	Normals  []r3.Vec
	Tris     [][3]int
	Quads    [][4]int
	Fields   []flowfields.FlowField
	Times    []float64
	Loading  []utils.Matrix
	Meta     Meta
}

func (z *Zone) NumPoints() int { return len(z.Vertices) }
func (z *Zone) NumTimes() int  { return len(z.Times) }

// Duration is the span of the time series after the start shift
func (z *Zone) Duration() float64 {
	if len(z.Times) == 0 {
		return 0
	}
	return z.Times[len(z.Times)-1]
}

// ZoneWriter consumes converted zones, typically an acoustic input file writer
type ZoneWriter interface {
	WriteZone(z *Zone) error
}

// BuildZone derives the selected fields from the window and assembles a zone.
// Pressure becomes gauge pressure relative to ref.Pinf and times are shifted so
// the first sample is at zero.
func BuildZone(name string, mesh *readfiles.Facet, normals []r3.Vec, w *taps.Window,
	fields []flowfields.FlowField, ref *flowfields.ReferenceValues, logger *zap.Logger) (z *Zone, err error) {
	var (
		npts    = mesh.NumVertices()
		nt      = w.Len()
		derived = make([][][]float64, len(fields))
	)
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(normals) != npts {
		return nil, fmt.Errorf("zone %s: %d normals for %d vertices", name, len(normals), npts)
	}
	if nt != 0 {
		if nr, _ := w.Variables[0].Dims(); nr != npts {
			return nil, types.NewRecordFormatError("", w.Start,
				"zone %s: tap stream holds %d points, facet holds %d vertices", name, nr, npts)
		}
	}
	for i, ff := range fields {
		if derived[i], err = flowfields.Derive(ff, w.Variables, ref); err != nil {
			return nil, err
		}
		if ff == flowfields.Pressure {
			for t := range derived[i] {
				floats.AddConst(-ref.Pinf, derived[i][t])
			}
		}
	}
	z = &Zone{
		Name:     name,
		Vertices: mesh.Vertices,
		Normals:  normals,
		Tris:     mesh.Tris,
		Quads:    mesh.Quads,
		Fields:   fields,
		Times:    make([]float64, nt),
		Loading:  make([]utils.Matrix, nt),
		Meta:     DefaultMeta(),
	}
	copy(z.Times, w.Times)
	if nt != 0 {
		floats.AddConst(-z.Times[0], z.Times)
	}
	for t := 0; t < nt; t++ {
		z.Loading[t] = utils.NewMatrix(len(fields), npts)
		for i := range fields {
			z.Loading[t].SetRow(i, derived[i][t])
		}
	}
	if utils.IsNan(z.Loading) {
		logger.Warn("zone loading holds NaN values, check for zero density in the tap stream",
			zap.String("zone", name))
	}
	logger.Info("built zone",
		zap.String("zone", name),
		zap.Int("npts", npts),
		zap.Int("nt", nt),
		zap.Float64("duration", z.Duration()))
	return
}
