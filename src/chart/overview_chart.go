package chart

import (
	"fmt"
	"path/filepath"

	"covidcharts/src/series"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	OverviewLaggedFile = "overview_lagged.png"
	OverviewRatiosFile = "overview_ratios.png"

	overviewWidth  = 8 * vg.Inch
	overviewHeight = 6 * vg.Inch
	// Case fatality above 4% is off the chart.
	caseFatalityMax = 4.0
)

var dateTicks = plot.TimeTicks{Format: "2006-01-02"}

// SaveOverviewFigures writes the lagged lines and the three ratio panels under
// dir and returns their paths.
func SaveOverviewFigures(dir string, lines *series.Lagged, ratios *series.Ratios) ([]string, error) {
	lagged := newDatePlot("")
	for i, s := range []series.Series{lines.Cases, lines.Admissions, lines.Deaths} {
		if err := addLine(lagged, s, i, true); err != nil {
			return nil, err
		}
	}
	lagged.Legend.Top = true
	lagged.Legend.Left = true

	cpa := newDatePlot(ratios.CasesPerAdmission.Name)
	cfr := newDatePlot(ratios.CaseFatality.Name)
	hfr := newDatePlot(ratios.HospitalFatality.Name)
	for _, panel := range []struct {
		p *plot.Plot
		s series.Series
	}{{cpa, ratios.CasesPerAdmission}, {cfr, ratios.CaseFatality}, {hfr, ratios.HospitalFatality}} {
		if err := addLine(panel.p, panel.s, 0, false); err != nil {
			return nil, err
		}
	}
	cfr.Y.Min = 0
	cfr.Y.Max = caseFatalityMax

	laggedPath := filepath.Join(dir, OverviewLaggedFile)
	if err := saveGrid(laggedPath, [][]*plot.Plot{{lagged}}, overviewWidth, overviewHeight); err != nil {
		return nil, err
	}
	ratiosPath := filepath.Join(dir, OverviewRatiosFile)
	if err := saveGrid(ratiosPath, [][]*plot.Plot{{cpa}, {cfr}, {hfr}}, overviewWidth, overviewHeight*1.5); err != nil {
		return nil, err
	}
	return []string{laggedPath, ratiosPath}, nil
}

func newDatePlot(yLabel string) *plot.Plot {
	p := plot.New()
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = dateTicks
	p.Add(plotter.NewGrid())
	return p
}

// addLine draws s in the i'th palette colour. Empty series are skipped since
// they have no data range.
func addLine(p *plot.Plot, s series.Series, i int, legend bool) error {
	if len(s.Points) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(s.Points))
	for j, pt := range s.Points {
		xys[j].X = float64(pt.Date.Unix())
		xys[j].Y = pt.Value
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("addLine %s: %w", s.Name, err)
	}
	l.Color = plotutil.Color(i)
	l.Width = vg.Points(1.5)
	p.Add(l)
	if legend {
		p.Legend.Add(s.Name, l)
	}
	return nil
}
