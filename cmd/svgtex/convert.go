package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/svgtex/internal/convert"
	"github.com/pdiddy/svgtex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [figures...]",
	Short: "Convert SVG figures to PDF or EPS for LaTeX inclusion",
	Long: `Convert renders SVG figures with Inkscape. Figures are named by base
name, glob pattern, or path; plain names are searched for under the
images directory, and every match is converted.

With --latex, each figure's text is split into a .pdf_tex fragment that
overlays the graphics at the original positions, so documents keep their
fonts and macros. Outputs land next to their sources and are rebuilt
only when older than them.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("latex", false, "split text into a LaTeX overlay fragment")
	convertCmd.Flags().String("format", "pdf", "output format: pdf or eps")
	convertCmd.Flags().String("area", "page", "export area: page or drawing")
	convertCmd.Flags().Bool("force", false, "reconvert even when outputs are up to date")
	convertCmd.Flags().Bool("text-to-path", false, "render text as outlines (only without --latex)")
	convertCmd.Flags().Bool("verify", false, "validate produced PDFs")
	convertCmd.Flags().Int("dpi", 0, "rasterization resolution for filters and bitmaps")
	convertCmd.Flags().String("manifest", "", "convert the figures listed in a YAML manifest instead")
	convertCmd.Flags().String("images-dir", "img", "directory searched for figures named without a path")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := convertOptions(cmd)
	if err != nil {
		return err
	}
	tool, err := locateInkscape()
	if err != nil {
		return err
	}

	manifestPath, _ := cmd.Flags().GetString("manifest")
	if manifestPath != "" {
		m, err := convert.ReadManifest(manifestPath)
		if err != nil {
			return err
		}
		result := convert.ConvertManifest(tool, m, filepath.Dir(manifestPath), opts, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d figure(s) failed conversion", result.Failed)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide one or more figure names, globs, or paths (or --manifest)")
	}

	// Unresolvable names count as failures like any other, so one typo
	// does not stop the remaining figures.
	var result convert.BatchResult
	dir := imagesDir(cmd)
	for _, name := range args {
		found, err := convert.FindSVGs(name, dir)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		for _, p := range found {
			switch convert.ConvertFigure(tool, p, opts, os.Stdout) {
			case types.StatusConverted:
				result.Converted++
			case types.StatusSkipped:
				result.Skipped++
			default:
				result.Failed++
			}
		}
	}
	result.Summary(os.Stdout)

	if result.HasFailures() {
		return fmt.Errorf("%d figure(s) failed conversion", result.Failed)
	}
	return nil
}

func convertOptions(cmd *cobra.Command) (convert.Options, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := types.ParseFormat(formatStr)
	if err != nil {
		return convert.Options{}, err
	}
	areaStr, _ := cmd.Flags().GetString("area")
	area, err := types.ParseArea(areaStr)
	if err != nil {
		return convert.Options{}, err
	}

	latex, _ := cmd.Flags().GetBool("latex")
	force, _ := cmd.Flags().GetBool("force")
	textToPath, _ := cmd.Flags().GetBool("text-to-path")
	verify, _ := cmd.Flags().GetBool("verify")
	dpi, _ := cmd.Flags().GetInt("dpi")
	if dpi == 0 {
		dpi = viper.GetInt("export_dpi")
	}

	return convert.Options{
		Format:     format,
		SplitText:  latex,
		Area:       area,
		TextToPath: textToPath && !latex,
		Force:      force,
		Verify:     verify,
		DPI:        dpi,
	}, nil
}
