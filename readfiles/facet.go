package readfiles

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/types"
)

// Declared counts only size the first allocation, the file content decides the rest
const maxPrealloc = 1 << 16

// Facet is a surface mesh of triangles and/or quads. Connectivity indices are
// 1-based into Vertices, as written in the file.
type Facet struct {
	Title    string
	Vertices []r3.Vec
	Tris     [][3]int
	Quads    [][4]int
}

func (f *Facet) NumVertices() int { return len(f.Vertices) }
func (f *Facet) HasTris() bool    { return len(f.Tris) != 0 }
func (f *Facet) HasQuads() bool   { return len(f.Quads) != 0 }

// ReadFacet parses the facet file at path. A nil logger discards progress messages.
func ReadFacet(path string, logger *zap.Logger) (f *Facet, err error) {
	var (
		file *os.File
	)
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("reading facet file", zap.String("path", path))
	if file, err = os.Open(path); err != nil {
		return nil, &types.IOError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()
	return parseFacet(newLineReader(file, path), logger)
}

// ParseFacet parses facet content from r
func ParseFacet(r io.Reader, logger *zap.Logger) (*Facet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return parseFacet(newLineReader(r, ""), logger)
}

func parseFacet(lr *lineReader, logger *zap.Logger) (f *Facet, err error) {
	var (
		title    string
		npts     int
		nblocks  int
		seenTris bool
		seenQuad bool
	)
	/*
		Preamble: header, "1", "Grid", reference point
	*/
	if title, err = lr.getLine(); err != nil {
		return
	}
	if err = lr.skipLines(3); err != nil {
		return
	}
	f = &Facet{Title: strings.TrimSpace(title)}

	if npts, err = lr.readCount("point count"); err != nil {
		return nil, err
	}
	logger.Debug("found points", zap.Int("npts", npts))
	f.Vertices = make([]r3.Vec, 0, min(npts, maxPrealloc))
	for i := 0; i < npts; i++ {
		var xyz []float64
		if xyz, err = lr.readFloats(3, "coordinate line"); err != nil {
			return nil, err
		}
		f.Vertices = append(f.Vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	if nblocks, err = lr.readCount("cell block count"); err != nil {
		return nil, err
	}
	for b := 0; b < nblocks; b++ {
		var (
			hdr []int
		)
		if err = lr.skipLines(1); err != nil { // Block label, not used for dispatch
			return nil, err
		}
		if hdr, err = lr.readInts(2, "cell block header"); err != nil {
			return nil, err
		}
		ncells, arity := hdr[0], hdr[1]
		if ncells < 0 {
			return nil, lr.errorf("negative cell count %d", ncells)
		}
		switch arity {
		case 3:
			if seenTris {
				return nil, lr.errorf("second triangle block")
			}
			seenTris = true
			f.Tris = make([][3]int, 0, min(ncells, maxPrealloc))
			for k := 0; k < ncells; k++ {
				var cell [3]int
				if err = lr.readCell(cell[:], npts); err != nil {
					return nil, err
				}
				f.Tris = append(f.Tris, cell)
			}
			logger.Debug("found triangles", zap.Int("ntris", ncells))
		case 4:
			if seenQuad {
				return nil, lr.errorf("second quad block")
			}
			seenQuad = true
			f.Quads = make([][4]int, 0, min(ncells, maxPrealloc))
			for k := 0; k < ncells; k++ {
				var cell [4]int
				if err = lr.readCell(cell[:], npts); err != nil {
					return nil, err
				}
				f.Quads = append(f.Quads, cell)
			}
			logger.Debug("found quads", zap.Int("nquads", ncells))
		default:
			return nil, lr.errorf("unsupported vertices per cell %d, need 3 or 4", arity)
		}
	}
	if !seenTris && !seenQuad {
		return nil, lr.errorf("no triangle or quad block found")
	}
	return
}

// readCell fills cell with the next connectivity line, checking each index is in [1,npts]
func (lr *lineReader) readCell(cell []int, npts int) (err error) {
	var nums []int
	if nums, err = lr.readInts(len(cell), "connectivity line"); err != nil {
		return
	}
	for i, n := range nums {
		if n < 1 || n > npts {
			return lr.errorf("vertex index %d outside [1, %d]", n, npts)
		}
		cell[i] = n
	}
	return
}
