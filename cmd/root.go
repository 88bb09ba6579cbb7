// Package cmd is for command line interactions with the kleborate application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "kleborate",
	Short: `Genotype bacterial genome assemblies.
Assign multilocus sequence types against a scheme of registered allele profiles`,
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
	cobra.OnInitialize(initConfig)
}

// initConfig reads in an optional .kleborate.yaml settings file. Flag
// values bound to viper take precedence over the file's.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(".kleborate")
	viper.SetConfigType("yaml")

	// the settings file is optional
	_ = viper.ReadInConfig()
}
