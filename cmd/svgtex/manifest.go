package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/svgtex/internal/convert"
	"github.com/pdiddy/svgtex/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write a figure manifest for the images directory",
	Long: `Manifest scans the images directory for SVG figures and writes a YAML
manifest listing each with a conversion mode. Edit the manifest to pin
per-figure modes or areas, then run convert --manifest.`,
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().String("mode", "latex-pdf", "conversion mode for every entry: pdf, latex-pdf, eps, or latex-eps")
	manifestCmd.Flags().String("out", "figures.yaml", "manifest file to write")
	manifestCmd.Flags().String("images-dir", "img", "directory scanned for figures")

	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseMode(modeStr)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	m, err := convert.ScanManifest(imagesDir(cmd), ".", string(mode))
	if err != nil {
		return err
	}
	if len(m.Figures) == 0 {
		return fmt.Errorf("no figures found under %s", imagesDir(cmd))
	}
	if err := convert.WriteManifest(out, m); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d figures)\n", out, len(m.Figures))
	return nil
}
