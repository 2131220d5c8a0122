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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopersa/extracts"
	"github.com/notargets/gopersa/geometry3D"
	"github.com/notargets/gopersa/readfiles"
	"github.com/notargets/gopersa/types"
)

type ExtractsOptions struct {
	FacetFolder   string
	OutputDir     string
	Frequency     int
	Reference     string
	RotateAxis    string
	RotateDegrees float64
}

// ExtractsCmd represents the extracts command
var ExtractsCmd = &cobra.Command{
	Use:   "extracts",
	Short: "Write Helios extract point files and tap_extracts.py from facet files",
	Long: `
Writes the vertices of every .facet file in the facet folder as an extract
point file, and a tap_extracts.py that points Helios at them. Move the output
folder into the Helios run directory as "extracts".

gopersa extracts -F facetfiles -o extracts -f 6 --reference "frameID = -2"`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		eo := &ExtractsOptions{}
		eo.FacetFolder, _ = cmd.Flags().GetString("facetFolder")
		eo.OutputDir, _ = cmd.Flags().GetString("outputDir")
		eo.Frequency, _ = cmd.Flags().GetInt("frequency")
		eo.Reference, _ = cmd.Flags().GetString("reference")
		eo.RotateAxis, _ = cmd.Flags().GetString("rotateAxis")
		eo.RotateDegrees, _ = cmd.Flags().GetFloat64("rotateDegrees")
		logger, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return
		}
		defer logger.Sync()
		return RunExtracts(eo, logger)
	},
}

func init() {
	rootCmd.AddCommand(ExtractsCmd)
	ExtractsCmd.Flags().StringP("facetFolder", "F", "facetfiles", "folder holding the .facet files")
	ExtractsCmd.Flags().StringP("outputDir", "o", "extracts", "folder to write point files and tap_extracts.py")
	ExtractsCmd.Flags().IntP("frequency", "f", 1, "extract sampling frequency, in solver steps")
	ExtractsCmd.Flags().String("reference", extracts.DefaultReference, "body or frame the taps are attached to")
	ExtractsCmd.Flags().String("rotateAxis", "", "rotate points about this axis (x, y or z) before writing")
	ExtractsCmd.Flags().Float64("rotateDegrees", -90, "rotation angle used with --rotateAxis")
}

func RunExtracts(eo *ExtractsOptions, logger *zap.Logger) (err error) {
	var (
		names    []string
		tapFiles []string
		axis     geometry3D.Axis
		file     *os.File
	)
	folder, outDir := expand(eo.FacetFolder), expand(eo.OutputDir)
	if eo.RotateAxis != "" {
		if axis, err = geometry3D.ParseAxis(eo.RotateAxis); err != nil {
			return
		}
	}
	if names, err = extracts.FacetNames(folder); err != nil {
		return
	}
	if len(names) == 0 {
		return &types.ConfigurationError{Path: folder, Msg: "no .facet files found"}
	}
	for _, name := range names {
		var (
			f        *readfiles.Facet
			vertices []r3.Vec
			path     string
		)
		if f, err = readfiles.ReadFacet(filepath.Join(folder, name+extracts.FacetExt), logger); err != nil {
			return
		}
		vertices = f.Vertices
		if axis != "" {
			if vertices, err = geometry3D.Rotate(vertices, axis, eo.RotateDegrees); err != nil {
				return
			}
		}
		if path, err = extracts.WritePoints(outDir, name, vertices); err != nil {
			return
		}
		logger.Info("wrote extract points", zap.String("zone", name),
			zap.Int("npts", len(vertices)), zap.String("path", path))
		tapFiles = append(tapFiles, name+".txt")
	}
	script := filepath.Join(outDir, extracts.ScriptName)
	if file, err = os.Create(script); err != nil {
		return &types.IOError{Path: script, Op: "create", Err: err}
	}
	defer file.Close()
	if err = extracts.WriteScript(file, tapFiles, eo.Frequency, eo.Reference); err != nil {
		return &types.IOError{Path: script, Op: "write", Err: err}
	}
	logger.Info("wrote extracts script", zap.String("path", script), zap.Int("ntaps", len(tapFiles)))
	return
}
