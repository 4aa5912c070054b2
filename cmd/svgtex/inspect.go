package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/svgtex/internal/convert"
	"github.com/pdiddy/svgtex/internal/svg"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [figures...]",
	Short: "Print canvas geometry and layers of SVG figures",
	Long: `Inspect reports each figure's canvas size in user units, inches, and
big points, its viewBox and scale, its text elements, and its Inkscape
layer table. Useful for checking what convert and scenes will see.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("images-dir", "img", "directory searched for figures named without a path")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more figure names, globs, or paths")
	}

	dir := imagesDir(cmd)
	failed := 0
	for _, name := range args {
		found, err := convert.FindSVGs(name, dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed++
			continue
		}
		for _, p := range found {
			if err := inspectFigure(p); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", p, err)
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d figure(s) could not be inspected", failed)
	}
	return nil
}

func inspectFigure(path string) error {
	doc, err := svg.ParseFile(path)
	if err != nil {
		return err
	}
	g, err := doc.Geometry()
	if err != nil {
		return err
	}

	fmt.Println(path)
	fmt.Printf("  canvas:  %.4g x %.4g px  (%.4g x %.4g in, %.4g x %.4g bp)\n",
		g.Width, g.Height,
		g.Width/svg.UserUnitsPerInch, g.Height/svg.UserUnitsPerInch,
		g.Width*svg.UserUnitToBigPoint, g.Height*svg.UserUnitToBigPoint)
	if g.ViewBox != nil {
		fmt.Printf("  viewBox: %g %g %g %g  (scale %.4g)\n",
			g.ViewBox.X, g.ViewBox.Y, g.ViewBox.W, g.ViewBox.H, g.Scale)
	}
	if n := len(doc.TextElements()); n > 0 {
		fmt.Printf("  text:    %d element(s)\n", n)
	}

	layers := doc.Layers()
	if len(layers) == 0 {
		return nil
	}
	fmt.Println("  layers:")
	for i, l := range layers {
		state := "visible"
		if svg.ParseStyle(l.Style())["display"] == "none" {
			state = "hidden"
		}
		fmt.Printf("    %2d. %s (%s)\n", i+1, l.Label, state)
	}
	return nil
}
