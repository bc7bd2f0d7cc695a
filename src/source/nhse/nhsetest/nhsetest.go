// Package nhsetest builds workbooks laid out like the published NHS England
// daily deaths files.
package nhsetest

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"covidcharts/src/source/nhse"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves report as dir/nhse.FileName(report.ReportDate) and
// returns the path. Death dates missing from a region are left blank.
func WriteWorkbook(t testing.TB, dir string, report *nhse.Report) string {
	t.Helper()
	f := NewWorkbook(t, report)
	p := filepath.Join(dir, nhse.FileName(report.ReportDate))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())
	return p
}

// NewWorkbook lays report out in memory.
func NewWorkbook(t testing.TB, report *nhse.Report) *excelize.File {
	t.Helper()
	sheet := nhse.SheetName(report.ReportDate)
	f := excelize.NewFile()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	require.NoError(t, f.SetCellValue(sheet, "B2", "COVID 19 total announced deaths"))
	require.NoError(t, f.SetCellValue(sheet, "B5", "Published: "+report.ReportDate.Format("2 January 2006")))

	headerRow := 14
	if report.ReportDate.Equal(time.Date(2020, 4, 2, 0, 0, 0, 0, time.UTC)) {
		headerRow = 15
	}

	dates := deathDates(report)
	set := func(col, row int, v interface{}) {
		name, err := excelize.CoordinatesToCellName(col, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, name, v))
	}

	set(2, headerRow, "NHS England Region")
	set(3, headerRow, "Up to 01-Mar-20")
	for i, d := range dates {
		set(4+i, headerRow, d)
	}
	set(4+len(dates), headerRow, "Total")

	set(2, headerRow+1, nhse.EnglandName)
	set(3, headerRow+2, "-") // spacer row, never blank in the published files
	for _, r := range nhse.Regions() {
		row := headerRow + 3 + int(r)
		set(2, row, r.String())
		set(3, row, 0)
		total := 0
		for i, d := range dates {
			if v, ok := report.Deaths[r][d]; ok {
				set(4+i, row, v)
				total += v
			}
		}
		set(4+len(dates), row, total)
	}
	return f
}

func deathDates(report *nhse.Report) []time.Time {
	seen := make(map[time.Time]bool)
	for _, m := range report.Deaths {
		for d := range m {
			seen[d] = true
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
