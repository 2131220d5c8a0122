package conversion

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/InputParameters"
	"github.com/notargets/gopersa/extracts"
	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/geometry3D"
	"github.com/notargets/gopersa/loading"
	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/taps"
	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

// Item pairs a facet file with the tap stream extracted on its vertices
type Item struct {
	Name      string
	FacetFile string
	TapFile   string
}

// Session carries everything one conversion run needs. It is read only once
// built and may be shared by concurrent conversions.
type Session struct {
	Fields      []flowfields.FlowField
	Stationary  bool
	TimeStart   int
	NumTimes    int
	GridToMeter float64
	Ref         *flowfields.ReferenceValues
	ByteOrder   binary.ByteOrder
	Meta        loading.Meta
	Logger      *zap.Logger
	Clock       clockwork.Clock
	Metrics     *Metrics
}

func NewSession(ip *InputParameters.InputParameters, ref *flowfields.ReferenceValues, logger *zap.Logger) (s *Session, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s = &Session{
		Stationary:  ip.Stationary,
		TimeStart:   ip.TimeStart,
		NumTimes:    ip.NumTimes,
		GridToMeter: ip.GridToMeter,
		Ref:         ref,
		ByteOrder:   binary.LittleEndian,
		Meta:        loading.DefaultMeta(),
		Logger:      logger,
		Clock:       clockwork.NewRealClock(),
	}
	if ip.Units != "" {
		s.Meta.Units = ip.Units
	}
	if s.Fields, err = flowfields.ParseFields(ip.Fields); err != nil {
		return nil, err
	}
	if ref == nil {
		for _, ff := range s.Fields {
			if ff == flowfields.Pressure {
				return nil, &types.ConfigurationError{Path: ip.ReferenceFile,
					Msg: "reference values are required to derive Pressure"}
			}
		}
	}
	return
}

// Plan lists the zones to convert: the explicit Zones, or the tap order
// recovered from the extracts script. Zone i reads the tap stream TapFile(i).
func Plan(ip *InputParameters.InputParameters) (items []Item, err error) {
	names := ip.Zones
	if len(names) == 0 {
		if names, err = extracts.ReadTapNamesFile(ip.ExtractsScript); err != nil {
			return nil, err
		}
	}
	items = make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{
			Name:      name,
			FacetFile: filepath.Join(ip.FacetFolder, name+extracts.FacetExt),
			TapFile:   ip.TapFile(i),
		}
	}
	return
}

// Convert reads the facet and tap stream of item and assembles its zone
func (s *Session) Convert(item Item) (z *loading.Zone, err error) {
	var (
		start  = s.Clock.Now()
		logger = s.Logger.With(zap.String("zone", item.Name))
		mesh   *readfiles.Facet
		vn     []r3.Vec
		stream *taps.Stream
		win    *taps.Window
	)
	if mesh, err = readfiles.ReadFacet(item.FacetFile, logger); err != nil {
		return nil, errors.Wrapf(err, "zone %s", item.Name)
	}
	scaled := *mesh
	scaled.Vertices = geometry3D.Scale(mesh.Vertices, s.GridToMeter)
	if vn, err = geometry3D.VertexNormals(&scaled); err != nil {
		return nil, errors.Wrapf(err, "zone %s: facet %s", item.Name, item.FacetFile)
	}
	logger.Debug("computed vertex normals", zap.Int("npts", len(vn)),
		zap.Int("ntris", len(scaled.Tris)), zap.Int("nquads", len(scaled.Quads)))

	if stream, err = taps.Bind(item.TapFile, taps.WithByteOrder(s.ByteOrder), taps.WithLogger(logger)); err != nil {
		return nil, errors.Wrapf(err, "zone %s", item.Name)
	}
	if win, err = stream.ReadWindow(s.TimeStart, s.NumTimes, s.Stationary); err != nil {
		return nil, errors.Wrapf(err, "zone %s", item.Name)
	}
	if z, err = loading.BuildZone(item.Name, &scaled, vn, win, s.Fields, s.Ref, logger); err != nil {
		return nil, errors.Wrapf(err, "zone %s: tap %s", item.Name, item.TapFile)
	}
	z.Meta = s.Meta

	elapsed := s.Clock.Since(start)
	if s.Metrics != nil {
		s.Metrics.RecordsRead.Add(float64(win.Len()))
		s.Metrics.PointsConverted.Add(float64(z.NumPoints()))
		s.Metrics.ConversionDuration.Observe(elapsed.Seconds())
	}
	logger.Info("converted zone",
		zap.Int("records", win.Len()),
		zap.Float64("seconds_of_data", z.Duration()),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)),
		zap.String("mem", utils.GetMemUsage()))
	return
}
