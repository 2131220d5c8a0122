package taps

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/notargets/gopersa/types"
)

const (
	intSize    = 4
	doubleSize = 8
	headerSize = 2 * intSize
)

// Layout is the per-record shape inferred from the first record header
type Layout struct {
	NQ, NPts   int
	RecordSize int64
	NumRecords int64
	FileSize   int64
}

// RecordSizeFor returns the byte length of one record holding npts points of nq variables
func RecordSizeFor(nq, npts int) int64 {
	return headerSize + doubleSize + 3*int64(npts)*doubleSize + int64(nq)*int64(npts)*doubleSize
}

func (l Layout) String() string {
	return fmt.Sprintf("nt = %d, npts = %d, nq = %d, record size = %d bytes", l.NumRecords, l.NPts, l.NQ, l.RecordSize)
}

// Stream is a bound tap file. It holds no open handle, each read opens and
// closes the file.
type Stream struct {
	Path      string
	layout    Layout
	byteOrder binary.ByteOrder
	logger    *zap.Logger
}

type Option func(*Stream)

// WithByteOrder overrides the little-endian default
func WithByteOrder(order binary.ByteOrder) Option {
	return func(s *Stream) { s.byteOrder = order }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Stream) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Bind infers the record layout of the tap file at path
func Bind(path string, opts ...Option) (s *Stream, err error) {
	var (
		file *os.File
		fi   os.FileInfo
		hdr  [2]int32
	)
	s = &Stream{Path: path, byteOrder: binary.LittleEndian, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if file, err = os.Open(path); err != nil {
		return nil, &types.IOError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()
	if fi, err = file.Stat(); err != nil {
		return nil, &types.IOError{Path: path, Op: "stat", Err: err}
	}
	if fi.Size() < headerSize {
		return nil, types.NewRecordFormatError(path, 0, "file holds %d bytes, too short for a record header", fi.Size())
	}
	if err = binary.Read(file, s.byteOrder, &hdr); err != nil {
		return nil, &types.IOError{Path: path, Op: "read", Err: err}
	}
	nq, npts := int(hdr[0]), int(hdr[1])
	if nq <= 0 || npts <= 0 {
		return nil, types.NewRecordFormatError(path, 0, "invalid header nq = %d, npts = %d", nq, npts)
	}
	if int64(npts) > (math.MaxInt64-headerSize-doubleSize)/(doubleSize*(3+int64(nq))) {
		return nil, types.NewRecordFormatError(path, 0, "header nq = %d, npts = %d overflows the record size", nq, npts)
	}
	s.layout = Layout{
		NQ:         nq,
		NPts:       npts,
		RecordSize: RecordSizeFor(nq, npts),
		FileSize:   fi.Size(),
	}
	if s.layout.FileSize%s.layout.RecordSize != 0 {
		return nil, types.NewRecordFormatError(path, 0, "file size %d is not a multiple of record size %d",
			s.layout.FileSize, s.layout.RecordSize)
	}
	s.layout.NumRecords = s.layout.FileSize / s.layout.RecordSize
	s.logger.Debug("bound tap stream",
		zap.String("path", path),
		zap.Int("nq", nq),
		zap.Int("npts", npts),
		zap.Int64("nt", s.layout.NumRecords))
	return
}

// Info reports the inferred layout, the number of records, points and variables
func (s *Stream) Info() Layout { return s.layout }
