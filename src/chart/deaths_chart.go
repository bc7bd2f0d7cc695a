package chart

import (
	"fmt"
	"math"
	"path/filepath"

	"covidcharts/src/common"
	"covidcharts/src/series"
	"covidcharts/src/source/nhse"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	deathsFigureWidth  = 16 * vg.Inch
	deathsFigureHeight = 12 * vg.Inch
	deathsFigureCols   = 2
	tickEvery          = 3
	// Region y limits are 300 deaths per 20 million people.
	deathsPerMillion = 300.0 / 20.0
)

// DeathsPanel is one region's grouped bars in the deaths figure.
type DeathsPanel struct {
	Title      string
	ByReport   []int
	ByDeath    []int
	YMax       float64 // 0 lets the axis fit the data
	TickLabels bool
}

// DeathsPanels lays a snapshot out north to south with England last. Only the
// bottom row labels its date ticks.
func DeathsPanels(s *series.Snapshot) []DeathsPanel {
	panels := make([]DeathsPanel, 0, nhse.NumRegions+1)
	for _, r := range nhse.PlotOrder {
		panels = append(panels, DeathsPanel{
			Title:      deathsTitle(r.String(), r.Population()),
			ByReport:   s.ByReport[r],
			ByDeath:    s.ByDeath[r],
			YMax:       deathsPerMillion * r.Population(),
			TickLabels: r == nhse.SouthWest,
		})
	}
	byReport, byDeath := s.England()
	panels = append(panels, DeathsPanel{
		Title:      deathsTitle(nhse.EnglandName, nhse.EnglandPopulation),
		ByReport:   byReport,
		ByDeath:    byDeath,
		TickLabels: true,
	})
	return panels
}

func deathsTitle(name string, population float64) string {
	return fmt.Sprintf("Deaths by report and death date, %s (population %.1fm)", name, population)
}

// DeathsFileName is the figure for the snapshot ending on the given report date.
func DeathsFileName(s *series.Snapshot) string {
	return "daily_total_reports" + s.End.Format(common.DateLayout) + ".pdf"
}

// SaveDeathsFigure renders s as a 4×2 grid of grouped bar panels under dir.
func SaveDeathsFigure(dir string, s *series.Snapshot) (string, error) {
	if len(s.Axis) == 0 {
		return "", fmt.Errorf("SaveDeathsFigure: empty date axis")
	}
	labels := make([]string, len(s.Axis))
	for i, d := range s.Axis {
		labels[i] = nhse.DayLabel(d)
	}

	panels := DeathsPanels(s)
	rows := (len(panels) + deathsFigureCols - 1) / deathsFigureCols
	grid := make([][]*plot.Plot, rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, deathsFigureCols)
	}
	for i, panel := range panels {
		p, err := barPlot(panel, labels)
		if err != nil {
			return "", fmt.Errorf("SaveDeathsFigure %s: %w", panel.Title, err)
		}
		grid[i/deathsFigureCols][i%deathsFigureCols] = p
	}

	path := filepath.Join(dir, DeathsFileName(s))
	return path, saveGrid(path, grid, deathsFigureWidth, deathsFigureHeight)
}

func barPlot(panel DeathsPanel, labels []string) (*plot.Plot, error) {
	n := len(labels)
	// Each pair of bars fills half of its date slot, as in a width 0.5 bar plot.
	w := deathsFigureWidth / deathsFigureCols * 0.8 / vg.Length(n) / 2

	report, err := plotter.NewBarChart(values(panel.ByReport), w)
	if err != nil {
		return nil, err
	}
	report.Offset = w / 2
	report.Color = plotutil.Color(0)
	report.LineStyle.Width = 0

	death, err := plotter.NewBarChart(values(panel.ByDeath), w)
	if err != nil {
		return nil, err
	}
	death.Offset = -w / 2
	death.Color = plotutil.Color(1)
	death.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = panel.Title
	p.Y.Label.Text = "Deaths"
	p.Add(plotter.NewGrid(), report, death)
	p.Legend.Add("Report date", report)
	p.Legend.Add("Death date", death)
	p.Legend.Top = true

	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5
	if panel.YMax > 0 {
		p.Y.Min = 0
		p.Y.Max = panel.YMax
	}

	ticks := make([]plot.Tick, 0, n/tickEvery+1)
	for i := 0; i < n; i += tickEvery {
		t := plot.Tick{Value: float64(i)}
		if panel.TickLabels {
			t.Label = labels[i]
		}
		ticks = append(ticks, t)
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func values(vs []int) plotter.Values {
	out := make(plotter.Values, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
