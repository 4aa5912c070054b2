// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/svgtex/internal/convert"
	"github.com/pdiddy/svgtex/internal/scenes"
	"github.com/pdiddy/svgtex/internal/svg"
	"github.com/pdiddy/svgtex/pkg/types"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes [drawing]",
	Short: "Export layer build-ups of a drawing as presentation frames",
	Long: `Scenes renders a layered drawing as a frame sequence for slide decks.
Frames come from an explicit --layers list (cumulative unless
--individual is set) or from a scene script embedded in a
"content"-labeled layer of the drawing, one line per frame:

  background, axes
  background, axes, data * 0.5
  +fit

A "+" line extends the previous frame; "* opacity" dims one layer.
Frames are PDFs with optional LaTeX overlay fragments, or PNGs. A beamer
inclusion script and a joined PDF deck can be written alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenes,
}

func init() {
	scenesCmd.Flags().String("layers", "", "comma-separated layer labels to build scenes from")
	scenesCmd.Flags().Bool("individual", false, "one scene per layer instead of cumulative prefixes")
	scenesCmd.Flags().String("format", "pdf", "frame format: pdf, eps, or png")
	scenesCmd.Flags().Bool("latex", false, "write a LaTeX overlay fragment per frame")
	scenesCmd.Flags().Int("dpi", 0, "raster density for png frames (default 180)")
	scenesCmd.Flags().String("out-dir", "", "directory for frames (default: alongside the drawing)")
	scenesCmd.Flags().Bool("force", false, "re-export frames that are up to date")
	scenesCmd.Flags().String("join", "", "merge the PDF frames into this deck file")
	scenesCmd.Flags().String("overlay-script", "", "write a beamer inclusion script to this file")
	scenesCmd.Flags().String("scene-order", "", "beamer overlay specs, one per scene, like 1-2,3,4-")
	scenesCmd.Flags().String("width", "", `\svgwidth for included frames, like 0.8\columnwidth`)
	scenesCmd.Flags().Bool("overprint", false, "wrap the inclusion script in an overprint environment")
	scenesCmd.Flags().String("images-dir", "img", "directory searched for drawings named without a path")

	rootCmd.AddCommand(scenesCmd)
}

func runScenes(cmd *cobra.Command, args []string) error {
	found, err := convert.FindSVGs(args[0], imagesDir(cmd))
	if err != nil {
		return err
	}
	if len(found) > 1 {
		return fmt.Errorf("%s matches %d drawings; name exactly one", args[0], len(found))
	}
	svgPath := found[0]

	list, err := sceneList(cmd, svgPath)
	if err != nil {
		return err
	}
	opts, err := sceneOptions(cmd)
	if err != nil {
		return err
	}
	joinPath, _ := cmd.Flags().GetString("join")
	if joinPath != "" && opts.Format != "" && opts.Format != types.FormatPDF {
		return fmt.Errorf("only pdf frames can be joined, not %s", opts.Format)
	}

	tool, err := locateInkscape()
	if err != nil {
		return err
	}

	arts, result := scenes.Export(tool, svgPath, list, opts, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d scene(s) failed export", result.Failed)
	}

	if scriptPath, _ := cmd.Flags().GetString("overlay-script"); scriptPath != "" {
		if err := writeOverlayScript(cmd, scriptPath, arts); err != nil {
			return err
		}
		fmt.Printf("Wrote overlay script %s\n", scriptPath)
	}
	if joinPath != "" {
		pdfs := make([]string, 0, len(arts))
		for _, a := range arts {
			pdfs = append(pdfs, a.Output)
		}
		if err := scenes.Join(pdfs, joinPath); err != nil {
			return err
		}
		fmt.Printf("Joined %d frames into %s\n", len(pdfs), joinPath)
	}
	return nil
}

// sceneList builds the scene sequence from --layers or, failing that,
// from the drawing's embedded script.
func sceneList(cmd *cobra.Command, svgPath string) ([]scenes.Scene, error) {
	layersFlag, _ := cmd.Flags().GetString("layers")
	if layersFlag != "" {
		var layers []string
		for _, name := range strings.Split(layersFlag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				layers = append(layers, name)
			}
		}
		if len(layers) == 0 {
			return nil, fmt.Errorf("--layers names no layers")
		}
		if individual, _ := cmd.Flags().GetBool("individual"); individual {
			return scenes.IndividualScenes(layers), nil
		}
		return scenes.CumulativeScenes(layers), nil
	}

	doc, err := svg.ParseFile(svgPath)
	if err != nil {
		return nil, err
	}
	lines, err := scenes.EmbeddedScript(doc)
	if err != nil {
		return nil, err
	}
	return scenes.ParseScript(lines)
}

func sceneOptions(cmd *cobra.Command) (scenes.Options, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := types.ParseFormat(formatStr)
	if err != nil {
		return scenes.Options{}, err
	}

	latex, _ := cmd.Flags().GetBool("latex")
	force, _ := cmd.Flags().GetBool("force")
	dpi, _ := cmd.Flags().GetInt("dpi")
	if dpi == 0 {
		dpi = viper.GetInt("raster_dpi")
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = viper.GetString("out_dir")
	}

	return scenes.Options{
		Format: format,
		Latex:  latex,
		DPI:    dpi,
		OutDir: outDir,
		Force:  force,
	}, nil
}

func writeOverlayScript(cmd *cobra.Command, path string, arts []types.Artifact) error {
	orderFlag, _ := cmd.Flags().GetString("scene-order")
	width, _ := cmd.Flags().GetString("width")
	overprint, _ := cmd.Flags().GetBool("overprint")

	f, err := os.Create(path)
	if err != nil {
		return &convert.OutputWriteError{Path: path, Err: err}
	}
	defer f.Close()

	return scenes.WriteOverlayScript(f, arts, scenes.OverlayOptions{
		Order:     scenes.ParseSceneOrder(orderFlag),
		Width:     width,
		Overprint: overprint,
	})
}
