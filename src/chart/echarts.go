package chart

import (
	"fmt"
	"io"
	"path/filepath"

	"covidcharts/src/common"
	"covidcharts/src/series"
	"covidcharts/src/source/nhse"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	OverviewPageFile = "overview.html"
	DeathsPageFile   = "deaths_latest.html"
)

// OverviewPage holds the lagged lines and ratio panels as interactive charts.
func OverviewPage(lines *series.Lagged, ratios *series.Ratios) *components.Page {
	page := components.NewPage()
	page.AddCharts(
		lineChart("Cases, lagged admissions and deaths", nil, lines.Cases, lines.Admissions, lines.Deaths),
		lineChart(ratios.CasesPerAdmission.Name, nil, ratios.CasesPerAdmission),
		lineChart(ratios.CaseFatality.Name, &opts.YAxis{Min: 0, Max: caseFatalityMax}, ratios.CaseFatality),
		lineChart(ratios.HospitalFatality.Name, nil, ratios.HospitalFatality),
	)
	return page
}

// DeathsPage holds one bar chart per panel of the deaths figure.
func DeathsPage(s *series.Snapshot) *components.Page {
	labels := make([]string, len(s.Axis))
	for i, d := range s.Axis {
		labels[i] = nhse.DayLabel(d)
	}
	page := components.NewPage()
	for _, panel := range DeathsPanels(s) {
		page.AddCharts(barChart(panel, labels))
	}
	return page
}

func lineChart(title string, yAxis *opts.YAxis, lines ...series.Series) *charts.Line {
	chart := charts.NewLine()
	y := opts.YAxis{}
	if yAxis != nil {
		y = *yAxis
	}
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithYAxisOpts(y),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(lines) > 1),
			Top:  "bottom",
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{
				Type:  "slider",
				Start: 0,
				End:   100,
			},
			opts.DataZoom{
				Type:  "inside",
				Start: 0,
				End:   100,
			},
		),
	)
	for _, s := range lines {
		data := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.LineData{Value: []interface{}{p.Date.Format(common.DateLayout), p.Value}})
		}
		chart.AddSeries(s.Name, data)
	}
	return chart
}

func barChart(panel DeathsPanel, labels []string) *charts.Bar {
	chart := charts.NewBar()
	y := opts.YAxis{Name: "Deaths"}
	if panel.YMax > 0 {
		y.Min = 0
		y.Max = panel.YMax
	}
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: panel.Title,
		}),
		charts.WithYAxisOpts(y),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
	)
	chart.SetXAxis(labels).
		AddSeries("Report date", barData(panel.ByReport)).
		AddSeries("Death date", barData(panel.ByDeath))
	return chart
}

func barData(vs []int) []opts.BarData {
	data := make([]opts.BarData, len(vs))
	for i, v := range vs {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

// Renderer is a chart or page that can render itself as HTML.
type Renderer interface {
	Render(w io.Writer) error
}

// SavePage renders r to dir/name.
func SavePage(dir, name string, r Renderer) (string, error) {
	path := filepath.Join(dir, name)
	fw, err := common.NewFileWriter(path)
	if err != nil {
		return "", err
	}
	if err := r.Render(fw); err != nil {
		fw.Abort()
		return "", fmt.Errorf("SavePage %s render error: %w", path, err)
	}
	return path, fw.Close()
}
