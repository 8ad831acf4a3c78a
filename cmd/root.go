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
	"fmt"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/eulerdg/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eulerdg",
	Short: "Discontinuous Galerkin solver for the 2D compressible Euler equations",
	Long: `
Solves the two dimensional Euler equations for an ideal gas on a uniform
rectangular mesh using a modal Discontinuous Galerkin method with SSP
Runge-Kutta time stepping. Work can run sequentially, across CPU cores,
or on an accelerator device.

eulerdg 2D -I sod.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eulerdg.yaml)")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "execution mode: sequential, parallel or accelerator")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "number of goroutines in parallel mode, 0 uses every core")
	rootCmd.PersistentFlags().CountP("verbose", "v", "log verbosity, repeat for more detail")
	for _, name := range []string{"mode", "threads", "verbose"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".eulerdg" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".eulerdg")
	}
	viper.SetEnvPrefix("eulerdg")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (logr.Logger, error) {
	return utils.NewLogger(viper.GetInt("verbose"))
}
