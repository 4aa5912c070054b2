// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the svgtex CLI.
// Implements: prd001-figures, prd002-scenes (CLI surface).
// See docs/ARCHITECTURE § Build Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/svgtex/internal/inkscape"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the svgtex CLI.
var rootCmd = &cobra.Command{
	Use:   "svgtex",
	Short: "Inkscape-backed SVG figure conversion for LaTeX builds",
	Long: `svgtex turns SVG drawings into the PDF, EPS, and PNG artifacts a LaTeX
build includes, driving Inkscape and rebuilding only what is older than
its source.

Figure conversion can split text out of a drawing into a LaTeX overlay
fragment so documents keep their fonts and macros; layered drawings can
be exported scene by scene for incremental slide reveals.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./svgtex.yaml or ~/.config/svgtex/config.yaml)")
	rootCmd.PersistentFlags().String("inkscape", "", "inkscape binary (default: found on PATH)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("svgtex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "svgtex"))
		}
	}

	viper.SetEnvPrefix("SVGTEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// locateInkscape resolves the converter binary from the --inkscape flag,
// the config file, or PATH, in that order.
func locateInkscape() (*inkscape.Tool, error) {
	path, _ := rootCmd.PersistentFlags().GetString("inkscape")
	if path == "" {
		path = viper.GetString("inkscape")
	}
	return inkscape.Find(path)
}

// imagesDir resolves the figure search directory: the command's
// --images-dir flag when given, the config file otherwise.
func imagesDir(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("images-dir") && viper.IsSet("images_dir") {
		return viper.GetString("images_dir")
	}
	dir, _ := cmd.Flags().GetString("images-dir")
	return dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
