package nhse_test

import (
	"errors"
	"testing"
	"time"

	"covidcharts/src/source/nhse"
	"covidcharts/src/source/nhse/nhsetest"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2020, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleReport(reportDate time.Time) *nhse.Report {
	r := &nhse.Report{ReportDate: reportDate}
	for i := range r.Deaths {
		r.Deaths[i] = map[time.Time]int{
			reportDate.AddDate(0, 0, -2): i,
			reportDate.AddDate(0, 0, -1): 10 + i,
		}
	}
	return r
}

func TestWorkbook(t *testing.T) {
	t.Run("Read", func(t *testing.T) {
		testReadWorkbook(t)
	})
	t.Run("FirstReport", func(t *testing.T) {
		testReadFirstReport(t)
	})
	t.Run("OldSheetName", func(t *testing.T) {
		testReadOldSheetName(t)
	})
	t.Run("NonNumeric", func(t *testing.T) {
		testParseNonNumeric(t)
	})
	t.Run("TextDigits", func(t *testing.T) {
		testParseTextDigits(t)
	})
	t.Run("BlankRows", func(t *testing.T) {
		testParseBlankRows(t)
	})
	t.Run("RegionMismatch", func(t *testing.T) {
		testParseRegionMismatch(t)
	})
	t.Run("MissingSheet", func(t *testing.T) {
		testParseMissingSheet(t)
	})
}

func testReadWorkbook(t *testing.T) {
	want := sampleReport(day(6, 10))
	p := nhsetest.WriteWorkbook(t, t.TempDir(), want)

	got, err := nhse.ReadWorkbook(p, want.ReportDate)
	require.NoError(t, err)
	require.Equal(t, want.ReportDate, got.ReportDate)
	for _, r := range nhse.Regions() {
		require.Equal(t, want.Deaths[r], got.Deaths[r], r.String())
	}
	require.Equal(t, want.Total(), got.Total())
}

func testReadFirstReport(t *testing.T) {
	want := sampleReport(day(4, 2))
	p := nhsetest.WriteWorkbook(t, t.TempDir(), want)

	got, err := nhse.ReadWorkbook(p, want.ReportDate)
	require.NoError(t, err)
	require.Equal(t, want.Deaths[nhse.SouthWest], got.Deaths[nhse.SouthWest])
}

func testReadOldSheetName(t *testing.T) {
	require.Equal(t, "COVID19 daily deaths by region", nhse.SheetName(day(5, 20)))
	require.Equal(t, "Tab1 Deaths by region", nhse.SheetName(day(5, 21)))

	want := sampleReport(day(5, 20))
	p := nhsetest.WriteWorkbook(t, t.TempDir(), want)
	got, err := nhse.ReadWorkbook(p, want.ReportDate)
	require.NoError(t, err)
	require.Equal(t, want.Total(), got.Total())
}

func testParseNonNumeric(t *testing.T) {
	report := sampleReport(day(6, 10))
	f := nhsetest.NewWorkbook(t, report)
	defer f.Close()
	sheet := nhse.SheetName(report.ReportDate)

	// Row 17 is East Of England, column D the first death date.
	require.NoError(t, f.SetCellValue(sheet, "D17", "n/a"))
	require.NoError(t, f.SetCellValue(sheet, "E17", 4.7))

	got, err := nhse.ParseWorkbook(f, report.ReportDate)
	require.NoError(t, err)
	require.Equal(t, 0, got.Deaths[nhse.EastOfEngland][day(6, 8)])
	require.Equal(t, 4, got.Deaths[nhse.EastOfEngland][day(6, 9)])
	require.Len(t, got.Deaths[nhse.EastOfEngland], 2)
}

func testParseTextDigits(t *testing.T) {
	report := sampleReport(day(6, 10))
	f := nhsetest.NewWorkbook(t, report)
	defer f.Close()
	sheet := nhse.SheetName(report.ReportDate)

	// Regions are rows 17 to 23. Digits stored as text are not counts.
	for row := 17; row < 17+nhse.NumRegions; row++ {
		ref, err := excelize.CoordinatesToCellName(4, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellStr(sheet, ref, "5"))
	}

	got, err := nhse.ParseWorkbook(f, report.ReportDate)
	require.NoError(t, err)
	for _, r := range nhse.Regions() {
		require.Equal(t, 0, got.Deaths[r][day(6, 8)], r.String())
		require.Equal(t, 10+int(r), got.Deaths[r][day(6, 9)], r.String())
	}
	require.Equal(t, 7*10+21, got.Total())
}

func testParseBlankRows(t *testing.T) {
	report := sampleReport(day(6, 10))
	f := nhsetest.NewWorkbook(t, report)
	defer f.Close()
	sheet := nhse.SheetName(report.ReportDate)

	// One blank row above the header, one between England and the spacer.
	require.NoError(t, f.InsertRows(sheet, 14, 1))
	require.NoError(t, f.InsertRows(sheet, 17, 1))
	// Shifted with its row, the text cell must still read as 0.
	require.NoError(t, f.SetCellStr(sheet, "D19", "7"))

	got, err := nhse.ParseWorkbook(f, report.ReportDate)
	require.NoError(t, err)
	require.Equal(t, 0, got.Deaths[nhse.EastOfEngland][day(6, 8)])
	for _, r := range nhse.Regions()[1:] {
		require.Equal(t, report.Deaths[r], got.Deaths[r], r.String())
	}
}

func testParseRegionMismatch(t *testing.T) {
	report := sampleReport(day(6, 10))
	f := nhsetest.NewWorkbook(t, report)
	defer f.Close()
	require.NoError(t, f.SetCellValue(nhse.SheetName(report.ReportDate), "B18", "Londres"))

	_, err := nhse.ParseWorkbook(f, report.ReportDate)
	require.Error(t, err)
	require.True(t, errors.Is(err, nhse.ErrRegionMismatch))
	require.Contains(t, err.Error(), "Londres")
}

func testParseMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := nhse.ParseWorkbook(f, day(6, 10))
	require.Error(t, err)
}
