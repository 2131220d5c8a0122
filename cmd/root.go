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
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gopersa",
	Short: "Convert Helios facet and tap extract files into permeable surface loading",
	Long: `
Reads unstructured surface meshes (.facet) and the binary tap extract streams
sampled on their vertices, derives density, momenta and gauge pressure, and
writes the time resolved loading of each surface zone.

gopersa extracts -F facets       # write extract points and tap_extracts.py
gopersa info extracts/tap_00.bin # inspect a tap stream
gopersa convert -I convert.yaml  # convert every zone`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		prof = StartProfile(viper.GetViper())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		prof.Stop()
	},
}

var prof stopper = noOpStopper{}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		prof.Stop()
		fmt.Printf("error: %+v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gopersa.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug level logging")
	rootCmd.PersistentFlags().String("profile_mode", "", "enable profiling mode, one of [cpu, mem, mutex, block]")
	rootCmd.PersistentFlags().Int("block_rate", 0, "block profiling rate, used with --profile_mode=block")
	for _, name := range []string{"verbose", "profile_mode", "block_rate"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(expand(cfgFile))
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gopersa")
	}
	viper.SetEnvPrefix("GOPERSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// expand resolves a leading ~ in user supplied paths
func expand(path string) string {
	if exp, err := homedir.Expand(path); err == nil {
		return exp
	}
	return path
}

func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.DisableStacktrace = true
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
