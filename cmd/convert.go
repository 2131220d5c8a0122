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
	"context"
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gopersa/InputParameters"
	"github.com/notargets/gopersa/conversion"
	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/loading"
	"github.com/notargets/gopersa/types"
)

type ConvertOptions struct {
	InputFile       string
	ReferenceFile   string
	OutputDir       string
	MetricsFile     string
	Parallelism     int
	ContinueOnError bool
	BigEndian       bool
	Verbose         bool
}

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert facet files and tap extract streams into zone loading",
	Long: `
Converts every zone named in the extracts script (or listed under Zones in the
input file). Zone i pairs <FacetFolder>/<name>.facet with the tap stream named
by TapPattern, and is written to <OutputDir>/<name>/<name>.gpz

gopersa convert -I convert.yaml -R inputs.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		co := &ConvertOptions{}
		co.InputFile, _ = cmd.Flags().GetString("inputFile")
		co.ReferenceFile, _ = cmd.Flags().GetString("referenceFile")
		co.OutputDir, _ = cmd.Flags().GetString("outputDir")
		co.MetricsFile = viper.GetString("metricsFile")
		co.Parallelism, _ = cmd.Flags().GetInt("parallelism")
		co.ContinueOnError, _ = cmd.Flags().GetBool("continueOnError")
		co.BigEndian, _ = cmd.Flags().GetBool("bigEndian")
		co.Verbose = viper.GetBool("verbose")
		logger, err := newLogger(co.Verbose)
		if err != nil {
			return
		}
		defer logger.Sync()
		return RunConvert(cmd.Context(), co, logger)
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().StringP("inputFile", "I", "", "YAML file of conversion parameters, defaults apply when absent")
	ConvertCmd.Flags().StringP("referenceFile", "R", "", "reference values file (.yaml, .json or .ini), overrides ReferenceFile")
	ConvertCmd.Flags().StringP("outputDir", "o", "", "output directory, overrides OutputDir")
	ConvertCmd.Flags().String("metricsFile", "", "write run metrics to this node exporter textfile")
	ConvertCmd.Flags().IntP("parallelism", "p", 0, "zones converted at once, overrides Parallelism")
	ConvertCmd.Flags().Bool("continueOnError", false, "record failed zones and continue with the rest")
	ConvertCmd.Flags().Bool("bigEndian", false, "tap streams were written big endian")
	_ = viper.BindPFlag("metricsFile", ConvertCmd.Flags().Lookup("metricsFile"))
}

func (co *ConvertOptions) parameters() (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.NewInputParameters()
	if co.InputFile != "" {
		if err = ip.ReadFile(expand(co.InputFile)); err != nil {
			return
		}
	}
	if co.ReferenceFile != "" {
		ip.ReferenceFile = co.ReferenceFile
	}
	if co.OutputDir != "" {
		ip.OutputDir = co.OutputDir
	}
	if co.Parallelism != 0 {
		ip.Parallelism = co.Parallelism
	}
	if co.ContinueOnError {
		ip.ContinueOnError = true
	}
	for _, p := range []*string{&ip.FacetFolder, &ip.ExtractsScript, &ip.TapPattern, &ip.ReferenceFile, &ip.OutputDir} {
		*p = expand(*p)
	}
	if err = ip.Validate(); err != nil {
		return nil, &types.ConfigurationError{Path: co.InputFile, Msg: "invalid conversion parameters", Err: err}
	}
	return
}

func needsReferences(names []string) bool {
	for _, name := range names {
		if ff, err := flowfields.NewFlowField(name); err == nil && ff == flowfields.Pressure {
			return true
		}
	}
	return false
}

func RunConvert(ctx context.Context, co *ConvertOptions, logger *zap.Logger) (err error) {
	var (
		ip      *InputParameters.InputParameters
		ref     *flowfields.ReferenceValues
		items   []conversion.Item
		session *conversion.Session
		report  *conversion.Report
	)
	if ctx == nil {
		ctx = context.Background()
	}
	if ip, err = co.parameters(); err != nil {
		return
	}
	if co.Verbose {
		ip.Print()
	}
	if needsReferences(ip.Fields) {
		if ref, err = InputParameters.LoadReferenceValues(ip.ReferenceFile); err != nil {
			return
		}
		if co.Verbose {
			ref.Print()
		}
	}
	if items, err = conversion.Plan(ip); err != nil {
		return
	}
	if session, err = conversion.NewSession(ip, ref, logger); err != nil {
		return
	}
	if co.BigEndian {
		session.ByteOrder = binary.BigEndian
	}
	session.Metrics = conversion.NewMetrics()
	logger.Info("converting zones", zap.Int("zones", len(items)), zap.String("output", ip.OutputDir))

	batch := &conversion.Batch{
		Session:         session,
		Writer:          loading.NewSnapshotWriter(ip.OutputDir),
		Parallelism:     ip.Parallelism,
		ContinueOnError: ip.ContinueOnError,
	}
	report, err = batch.Run(ctx, items)
	report.Print()
	if co.MetricsFile != "" {
		if merr := session.Metrics.WriteTextfile(expand(co.MetricsFile)); merr != nil {
			logger.Warn("unable to write metrics", zap.String("path", co.MetricsFile), zap.Error(merr))
		}
	}
	if err != nil {
		return
	}
	if failed := report.Failed(); len(failed) != 0 {
		return fmt.Errorf("%d of %d zones failed, first: %w", len(failed), len(items), failed[0].Err)
	}
	return
}
