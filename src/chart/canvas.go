package chart

import (
	"fmt"
	"path/filepath"
	"strings"

	"covidcharts/src/common"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
)

// saveGrid lays plots out as rows of tiles on one w×h page and writes it to
// path in the format named by the extension.
func saveGrid(path string, plots [][]*plot.Plot, w, h vg.Length) error {
	if len(plots) == 0 || len(plots[0]) == 0 {
		return fmt.Errorf("saveGrid %s: no plots", path)
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("saveGrid %s: %w", path, err)
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	fw, err := common.NewFileWriter(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(fw); err != nil {
		fw.Abort()
		return fmt.Errorf("saveGrid %s write error: %w", path, err)
	}
	return fw.Close()
}
