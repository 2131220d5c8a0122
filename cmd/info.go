/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/taps"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info file...",
	Short: "Print the layout of tap streams and the size of facet meshes",
	Long: `
For a tap stream prints the number of records, points and variables per point.
For a .facet file prints the number of vertices, triangles and quads.

gopersa info extracts/tap_00.bin facets/front.facet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bigEndian, _ := cmd.Flags().GetBool("bigEndian")
		return RunInfo(os.Stdout, args, bigEndian)
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().Bool("bigEndian", false, "tap streams were written big endian")
}

func RunInfo(w io.Writer, paths []string, bigEndian bool) (err error) {
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	for _, path := range paths {
		path = expand(path)
		if strings.EqualFold(filepath.Ext(path), ".facet") {
			var f *readfiles.Facet
			if f, err = readfiles.ReadFacet(path, nil); err != nil {
				return
			}
			fmt.Fprintf(w, "%s: \"%s\" %d vertices, %d triangles, %d quads\n",
				path, f.Title, f.NumVertices(), len(f.Tris), len(f.Quads))
			continue
		}
		var s *taps.Stream
		if s, err = taps.Bind(path, taps.WithByteOrder(order)); err != nil {
			return
		}
		fmt.Fprintf(w, "%s: %v\n", path, s.Info())
	}
	return
}
