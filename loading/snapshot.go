package loading

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

const SnapshotExt = ".gpz"

// snapshot is the gob wire form of a Zone. Loading frames are stored flat,
// row major, each NFields x NPts.
type snapshot struct {
	Name     string
	Vertices []r3.Vec
	Normals  []r3.Vec
	Tris     [][3]int
	Quads    [][4]int
	Fields   []string
	Times    []float64
	Loading  [][]float64
	Meta     Meta
}

// SnapshotWriter writes each zone to <Dir>/<name>/<name>.gpz as a zstd
// compressed gob stream.
type SnapshotWriter struct {
	Dir string
}

func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{Dir: dir}
}

func (sw *SnapshotWriter) Path(name string) string {
	return filepath.Join(sw.Dir, name, name+SnapshotExt)
}

func (sw *SnapshotWriter) WriteZone(z *Zone) (err error) {
	var (
		path = sw.Path(z.Name)
		file *os.File
		enc  *zstd.Encoder
	)
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &types.IOError{Path: filepath.Dir(path), Op: "mkdir", Err: err}
	}
	if file, err = os.Create(path); err != nil {
		return &types.IOError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &types.IOError{Path: path, Op: "close", Err: cerr}
		}
	}()
	if enc, err = zstd.NewWriter(file); err != nil {
		return &types.IOError{Path: path, Op: "compress", Err: err}
	}
	if err = gob.NewEncoder(enc).Encode(toSnapshot(z)); err != nil {
		enc.Close()
		return &types.IOError{Path: path, Op: "encode", Err: err}
	}
	if err = enc.Close(); err != nil {
		return &types.IOError{Path: path, Op: "write", Err: err}
	}
	return
}

// ReadSnapshot loads a zone written by SnapshotWriter
func ReadSnapshot(path string) (z *Zone, err error) {
	var (
		file *os.File
		dec  *zstd.Decoder
		snap snapshot
	)
	if file, err = os.Open(path); err != nil {
		return nil, &types.IOError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()
	if dec, err = zstd.NewReader(file); err != nil {
		return nil, &types.IOError{Path: path, Op: "read", Err: err}
	}
	defer dec.Close()
	if err = gob.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, types.NewFormatError(path, 0, "unable to decode snapshot: %v", err)
	}
	return fromSnapshot(path, &snap)
}

func toSnapshot(z *Zone) *snapshot {
	snap := &snapshot{
		Name:     z.Name,
		Vertices: z.Vertices,
		Normals:  z.Normals,
		Tris:     z.Tris,
		Quads:    z.Quads,
		Fields:   make([]string, len(z.Fields)),
		Times:    z.Times,
		Loading:  make([][]float64, len(z.Loading)),
		Meta:     z.Meta,
	}
	for i, ff := range z.Fields {
		snap.Fields[i] = ff.String()
	}
	for t, m := range z.Loading {
		snap.Loading[t] = m.DataP
	}
	return snap
}

func fromSnapshot(path string, snap *snapshot) (z *Zone, err error) {
	var (
		npts = len(snap.Vertices)
	)
	z = &Zone{
		Name:     snap.Name,
		Vertices: snap.Vertices,
		Normals:  snap.Normals,
		Tris:     snap.Tris,
		Quads:    snap.Quads,
		Times:    snap.Times,
		Loading:  make([]utils.Matrix, len(snap.Loading)),
		Meta:     snap.Meta,
	}
	if z.Fields, err = flowfields.ParseFields(snap.Fields); err != nil {
		return nil, err
	}
	nf := len(z.Fields)
	for t, data := range snap.Loading {
		if len(data) != nf*npts {
			return nil, types.NewRecordFormatError(path, t, "loading frame holds %d values, need %d", len(data), nf*npts)
		}
		z.Loading[t] = utils.NewMatrix(nf, npts, data)
	}
	if len(z.Loading) != len(z.Times) {
		return nil, fmt.Errorf("snapshot %s: %d loading frames for %d times", path, len(z.Loading), len(z.Times))
	}
	return
}
