package taps

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/notargets/gopersa/types"
	"github.com/notargets/gopersa/utils"
)

// Window is a contiguous run of records. Positions holds a single matrix when
// read as stationary, otherwise one per record.
type Window struct {
	Start     int
	Times     []float64
	Positions []utils.Matrix // npts x 3
	Variables []utils.Matrix // npts x nq
}

func (w *Window) Len() int { return len(w.Times) }

// Record is one time sample of the stream, as laid out on disk
type Record struct {
	NQ, NPts  int32
	Time      float64
	Positions utils.Matrix
	Variables utils.Matrix
}

// ReadWindow decodes count records beginning at start. A count of -1 reads
// through the end of the stream. Records before start are never read.
func (s *Stream) ReadWindow(start, count int, stationary bool) (w *Window, err error) {
	var (
		nt   = int(s.layout.NumRecords)
		file *os.File
	)
	if start < 0 || start > nt {
		return nil, &types.IOError{Path: s.Path, Op: "seek",
			Err: fmt.Errorf("start record %d outside [0, %d]", start, nt)}
	}
	if count == -1 {
		count = nt - start
	}
	if count < 0 || count > nt-start {
		return nil, &types.IOError{Path: s.Path, Op: "seek",
			Err: fmt.Errorf("window of %d records at %d outside [0, %d)", count, start, nt)}
	}
	w = &Window{Start: start, Times: make([]float64, 0, count)}
	if count == 0 {
		return
	}
	if file, err = os.Open(s.Path); err != nil {
		return nil, &types.IOError{Path: s.Path, Op: "open", Err: err}
	}
	defer file.Close()

	readSize := int64(count) * s.layout.RecordSize
	s.logger.Debug("reading tap window",
		zap.String("path", s.Path),
		zap.Int("start", start),
		zap.Int("count", count),
		zap.Int64("readsize", readSize))

	reader := bufio.NewReader(io.NewSectionReader(file, int64(start)*s.layout.RecordSize, readSize))
	for k := 0; k < count; k++ {
		var rec *Record
		if rec, err = s.readRecord(reader, start+k); err != nil {
			return nil, err
		}
		w.Times = append(w.Times, rec.Time)
		w.Variables = append(w.Variables, rec.Variables)
		if !stationary || len(w.Positions) == 0 {
			w.Positions = append(w.Positions, rec.Positions)
		}
	}
	return
}

func (s *Stream) readRecord(r io.Reader, index int) (rec *Record, err error) {
	var (
		hdr [2]int32
	)
	if err = binary.Read(r, s.byteOrder, &hdr); err != nil {
		return nil, s.shortRead(index, err)
	}
	if int(hdr[0]) != s.layout.NQ || int(hdr[1]) != s.layout.NPts {
		return nil, types.NewRecordFormatError(s.Path, index,
			"header nq = %d, npts = %d does not match bound nq = %d, npts = %d",
			hdr[0], hdr[1], s.layout.NQ, s.layout.NPts)
	}
	rec = &Record{
		NQ:        hdr[0],
		NPts:      hdr[1],
		Positions: utils.NewMatrix(s.layout.NPts, 3),
		Variables: utils.NewMatrix(s.layout.NPts, s.layout.NQ),
	}
	if err = binary.Read(r, s.byteOrder, &rec.Time); err != nil {
		return nil, s.shortRead(index, err)
	}
	if err = binary.Read(r, s.byteOrder, rec.Positions.DataP); err != nil {
		return nil, s.shortRead(index, err)
	}
	if err = binary.Read(r, s.byteOrder, rec.Variables.DataP); err != nil {
		return nil, s.shortRead(index, err)
	}
	rec.Positions.SetReadOnly(fmt.Sprintf("positions[%d]", index))
	rec.Variables.SetReadOnly(fmt.Sprintf("variables[%d]", index))
	return
}

func (s *Stream) shortRead(index int, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &types.IOError{Path: s.Path, Op: fmt.Sprintf("read record %d", index), Err: err}
}

// WriteRecord encodes rec in the tap layout
func WriteRecord(w io.Writer, order binary.ByteOrder, rec *Record) (err error) {
	var (
		npts, nc = rec.Variables.Dims()
	)
	if int(rec.NQ) != nc || int(rec.NPts) != npts {
		return fmt.Errorf("record header nq = %d, npts = %d does not match variables %d x %d",
			rec.NQ, rec.NPts, npts, nc)
	}
	if pr, pc := rec.Positions.Dims(); pr != npts || pc != 3 {
		return fmt.Errorf("record positions are %d x %d, need %d x 3", pr, pc, npts)
	}
	for _, v := range []any{[2]int32{rec.NQ, rec.NPts}, rec.Time, rec.Positions.DataP, rec.Variables.DataP} {
		if err = binary.Write(w, order, v); err != nil {
			return
		}
	}
	return
}
