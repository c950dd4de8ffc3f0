// Package cmd is for command line interactions with the STR tooling
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "str",
	Short: `Identify and refine short tandem repeats for genotyping.
Runs TRF for discovery, refines its repeats to exact runs, and builds a lobSTR index`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP("settings", "s", "", "path to a YAML settings file")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))

	cobra.OnInitialize(initSettings)
}

// initSettings reads the settings file into viper, if one was passed.
func initSettings() {
	settings := viper.GetString("settings")
	if settings == "" {
		return
	}

	viper.SetConfigFile(settings)
	if err := viper.ReadInConfig(); err != nil {
		stderr.Fatalf("failed to read settings %s: %v", settings, err)
	}
}
