package extracts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/types"
)

const (
	ScriptName       = "tap_extracts.py"
	DefaultReference = "bodyID = 2"
	FacetExt         = ".facet"
)

var tapOpen = regexp.MustCompile(`open\('(extracts/.*?\.txt)'\)`)

// WritePoints writes vertices to <dir>/<name>.txt, one "x y z" line per point
func WritePoints(dir, name string, vertices []r3.Vec) (path string, err error) {
	var (
		file *os.File
	)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return "", &types.IOError{Path: dir, Op: "mkdir", Err: err}
	}
	path = filepath.Join(dir, name+".txt")
	if file, err = os.Create(path); err != nil {
		return "", &types.IOError{Path: path, Op: "create", Err: err}
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	for _, v := range vertices {
		if _, err = fmt.Fprintf(w, "%.7f %.7f %.7f\n", v.X, v.Y, v.Z); err != nil {
			return "", &types.IOError{Path: path, Op: "write", Err: err}
		}
	}
	if err = w.Flush(); err != nil {
		return "", &types.IOError{Path: path, Op: "write", Err: err}
	}
	return
}

// WriteScript writes the Helios extracts interface for the tap point files in
// tapFiles, each a file name under extracts/. The reference line attaches the
// taps to a body or frame, an empty reference uses DefaultReference.
func WriteScript(w io.Writer, tapFiles []string, frequency int, reference string) (err error) {
	if reference == "" {
		reference = DefaultReference
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "class tap_extracts:\n")
	fmt.Fprintf(bw, "    nslices=0\n")
	fmt.Fprintf(bw, "    ntaps=%d\n", len(tapFiles))
	for i, name := range tapFiles {
		fmt.Fprintf(bw, "    class tap%d:\n", i)
		fmt.Fprintf(bw, "        frequency=%d\n", frequency)
		fmt.Fprintf(bw, "        x = [[float(a) for a in b.split()] for b in open('extracts/%s').readlines()]\n", name)
		fmt.Fprintf(bw, "        %s\n", reference)
	}
	return bw.Flush()
}

// ReadTapNames recovers the zone names, in tap order, from an extracts script
func ReadTapNames(r io.Reader) (names []string, err error) {
	var data []byte
	if data, err = io.ReadAll(r); err != nil {
		return
	}
	for _, m := range tapOpen.FindAllStringSubmatch(string(data), -1) {
		base := filepath.Base(m[1])
		names = append(names, strings.SplitN(base, ".", 2)[0])
	}
	return
}

// ReadTapNamesFile is ReadTapNames on the script at path
func ReadTapNamesFile(path string) (names []string, err error) {
	var file *os.File
	if file, err = os.Open(path); err != nil {
		return nil, &types.IOError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()
	if names, err = ReadTapNames(file); err != nil {
		return nil, &types.IOError{Path: path, Op: "read", Err: err}
	}
	if len(names) == 0 {
		return nil, types.NewFormatError(path, 0, "no tap point files referenced")
	}
	return
}

// FacetNames lists the facet files in dir by name, without extension, sorted
func FacetNames(dir string) (names []string, err error) {
	var entries []os.DirEntry
	if entries, err = os.ReadDir(dir); err != nil {
		return nil, &types.IOError{Path: dir, Op: "readdir", Err: err}
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FacetExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), FacetExt))
	}
	return
}
