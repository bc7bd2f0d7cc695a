package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"covidcharts/src/common"
	"covidcharts/src/series"
	"covidcharts/src/source/dashboard"
	"covidcharts/src/source/nhse"

	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2020, m, d, 0, 0, 0, 0, time.UTC)
}

func testSnapshot(t *testing.T) *series.Snapshot {
	l := series.NewLedger()
	for i, rd := range common.DateRange(day(4, 2), day(4, 10)) {
		report := &nhse.Report{ReportDate: rd}
		for r := range report.Deaths {
			report.Deaths[r] = map[time.Time]int{
				rd.AddDate(0, 0, -1): 5 + r + i,
				rd.AddDate(0, 0, -3): 2,
			}
		}
		require.NoError(t, l.Add(report))
	}
	return l.Snapshot(day(4, 10), common.DateRange(day(3, 19), day(4, 12)))
}

func testOverview() (*series.Lagged, *series.Ratios) {
	recs := make([]*dashboard.Record, 40)
	for i := range recs {
		c, a, d := 1000+10*i, 80+i, 12+i
		recs[i] = &dashboard.Record{
			Date:          dashboard.Date(day(9, 1).AddDate(0, 0, i)),
			NewCases:      &c,
			NewAdmissions: &a,
			NewDeaths:     &d,
		}
	}
	lags := series.Lags{RecentDaysExcluded: 3, Hosp: 7, Death: 14}
	return series.LaggedLines(recs, lags), series.LaggedRatios(recs, lags)
}

func TestChart(t *testing.T) {
	t.Run("DeathsPanels", func(t *testing.T) {
		testDeathsPanels(t)
	})
	t.Run("DeathsFigure", func(t *testing.T) {
		testDeathsFigure(t)
	})
	t.Run("OverviewFigures", func(t *testing.T) {
		testOverviewFigures(t)
	})
	t.Run("Pages", func(t *testing.T) {
		testPages(t)
	})
}

func testDeathsPanels(t *testing.T) {
	panels := DeathsPanels(testSnapshot(t))
	require.Len(t, panels, nhse.NumRegions+1)
	require.Equal(t, "Deaths by report and death date, North West (population 7.3m)", panels[0].Title)
	require.InDelta(t, 300*7.3/20, panels[0].YMax, 1e-9)
	require.False(t, panels[0].TickLabels)

	require.Contains(t, panels[6].Title, "South West")
	require.True(t, panels[6].TickLabels)

	england := panels[7]
	require.Equal(t, "Deaths by report and death date, England (population 56.0m)", england.Title)
	require.Zero(t, england.YMax)
	require.True(t, england.TickLabels)

	var regionSum, englandSum int
	for _, p := range panels[:7] {
		for _, v := range p.ByDeath {
			regionSum += v
		}
	}
	for _, v := range england.ByDeath {
		englandSum += v
	}
	require.Equal(t, regionSum, englandSum)
}

func testDeathsFigure(t *testing.T) {
	dir := t.TempDir()
	s := testSnapshot(t)
	path, err := SaveDeathsFigure(dir, s)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "daily_total_reports2020-04-10.pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	_, err = SaveDeathsFigure(dir, &series.Snapshot{End: day(4, 10)})
	require.Error(t, err)
}

func testOverviewFigures(t *testing.T) {
	dir := t.TempDir()
	lines, ratios := testOverview()
	paths, err := SaveOverviewFigures(dir, lines, ratios)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), p)
	}

	// Empty series still render.
	_, err = SaveOverviewFigures(t.TempDir(), &series.Lagged{}, &series.Ratios{})
	require.NoError(t, err)
}

func testPages(t *testing.T) {
	dir := t.TempDir()
	lines, ratios := testOverview()
	path, err := SavePage(dir, OverviewPageFile, OverviewPage(lines, ratios))
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)
	require.Contains(t, html, "echarts")
	require.Contains(t, html, "Hosp. fat. rate")
	require.Contains(t, html, "Admissions")

	path, err = SavePage(dir, DeathsPageFile, DeathsPage(testSnapshot(t)))
	require.NoError(t, err)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "South East"))
	require.Contains(t, string(b), "Death date")
}
