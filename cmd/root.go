// Copyright © 2025 The Lantern authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Lantern — diagnostics aggregation for editors and tooling",
	Long: `Lantern aggregates diagnostic messages from many providers — linters,
compilers, type checkers — into one store with a uniform shape, and serves
them to editors over the Language Server Protocol or to the terminal.

Getting started:
  lantern lsp                  Start the language server (stdio transport)
  lantern show dump.json       Render a diagnostics snapshot
  lantern show --filter 'severity:error' dump.json
  lantern console dump.json    Explore a snapshot interactively
  lantern fix dump.json        Apply every fix recorded in a snapshot

Snapshots are JSON files produced by tooling that embeds the lantern
store; each records the per-provider file and project messages at one
point in time.

More information:
  Source code:     https://github.com/lanternhq/lantern`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lantern.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lantern" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lantern")
	}

	viper.SetEnvPrefix("lantern")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
