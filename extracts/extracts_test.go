package extracts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/types"
)

func TestWritePoints(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "extracts")
	path, err := WritePoints(dir, "Front", []r3.Vec{{X: 1, Y: 2.5, Z: -3}, {X: 0.12345678}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Front.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0000000 2.5000000 -3.0000000\n0.1234568 0.0000000 0.0000000\n", string(data))
}

func TestScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf, []string{"Front.txt", "Back.txt"}, 6, ""))
	script := buf.String()
	assert.True(t, strings.HasPrefix(script, "class tap_extracts:\n    nslices=0\n    ntaps=2\n"))
	assert.Contains(t, script, "    class tap1:\n        frequency=6\n")
	assert.Contains(t, script, "open('extracts/Back.txt').readlines()]\n        bodyID = 2\n")
	{ // Names come back in tap order
		names, err := ReadTapNames(strings.NewReader(script))
		require.NoError(t, err)
		assert.Equal(t, []string{"Front", "Back"}, names)
	}
	{ // Frame reference
		buf.Reset()
		require.NoError(t, WriteScript(&buf, []string{"Wing.txt"}, 1, "frameID = -2"))
		assert.Contains(t, buf.String(), "        frameID = -2\n")
	}
	{ // Script files
		dir := t.TempDir()
		path := filepath.Join(dir, ScriptName)
		require.NoError(t, os.WriteFile(path, []byte(script), 0644))
		names, err := ReadTapNamesFile(path)
		require.NoError(t, err)
		assert.Len(t, names, 2)
		empty := filepath.Join(dir, "empty.py")
		require.NoError(t, os.WriteFile(empty, []byte("class tap_extracts:\n    ntaps=0\n"), 0644))
		_, err = ReadTapNamesFile(empty)
		var fe *types.FormatError
		assert.True(t, errors.As(err, &fe))
		_, err = ReadTapNamesFile(filepath.Join(dir, "missing.py"))
		var ioe *types.IOError
		assert.True(t, errors.As(err, &ioe))
	}
}

func TestFacetNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.facet", "a.facet", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.facet"), 0755))
	names, err := FacetNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
