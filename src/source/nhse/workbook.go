package nhse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"covidcharts/src/common"

	"github.com/xuri/excelize/v2"
)

const (
	regionColumn = "NHS England Region"
	tableRows    = 9
	// Rows above the regions inside the table: the England total and a spacer.
	regionRowOffset = 2
	// Excel serials accepted as death-date headers, 2019-11-30 to 2036-11-23.
	minDateSerial = 43799
	maxDateSerial = 50000
)

var (
	ErrRegionMismatch = errors.New("region mismatch")
	ErrMissingColumn  = errors.New("missing column")
	ErrShortTable     = errors.New("short table")
)

var (
	sheetRenameDate = time.Date(2020, 5, 20, 0, 0, 0, 0, time.UTC)
	firstReportDate = time.Date(2020, 4, 2, 0, 0, 0, 0, time.UTC)
)

// Report holds one workbook: for each region, deaths by death date as
// announced on ReportDate.
type Report struct {
	ReportDate time.Time
	Deaths     [NumRegions]map[time.Time]int
}

// Total is the number of deaths announced in the report.
func (r *Report) Total() int {
	var n int
	for _, m := range r.Deaths {
		for _, v := range m {
			n += v
		}
	}
	return n
}

// SheetName is the region table's sheet, which was renamed after 20 May 2020.
func SheetName(reportDate time.Time) string {
	if !common.Day(reportDate).After(sheetRenameDate) {
		return "COVID19 daily deaths by region"
	}
	return "Tab1 Deaths by region"
}

// skipRows is the number of leading rows before the table. The first workbook
// carried one extra line in its preamble.
func skipRows(reportDate time.Time) int {
	if common.Day(reportDate).Equal(firstReportDate) {
		return 14
	}
	return 13
}

// ReadWorkbook parses the region table of the workbook at path.
func ReadWorkbook(path string, reportDate time.Time) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadWorkbook open %s error: %w", path, err)
	}
	defer f.Close()

	report, err := ParseWorkbook(f, reportDate)
	if err != nil {
		return nil, fmt.Errorf("ReadWorkbook %s: %w", path, err)
	}
	return report, nil
}

// ParseWorkbook extracts the region table from f. Header cells holding Excel
// dates name death-date columns; non-numeric counts read as zero.
func ParseWorkbook(f *excelize.File, reportDate time.Time) (*Report, error) {
	sheet := SheetName(reportDate)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	// Rows keep their sheet row number so cell types can be looked up.
	type tableRow struct {
		num   int
		cells []string
	}
	var table []tableRow
	if skip := skipRows(reportDate); skip < len(rows) {
		for i, row := range rows[skip:] {
			if !blankRow(row) {
				table = append(table, tableRow{num: skip + i + 1, cells: row})
			}
			if len(table) == 1+tableRows {
				break
			}
		}
	}
	if len(table) < 1+regionRowOffset+NumRegions {
		return nil, fmt.Errorf("%w: %d rows in sheet %q", ErrShortTable, len(table), sheet)
	}
	header, data := table[0], table[1:]

	regionCol := -1
	dateCols := make(map[int]time.Time)
	for i, h := range header.cells {
		h = strings.TrimSpace(h)
		if h == regionColumn {
			regionCol = i
			continue
		}
		if d, ok := headerDate(h, date1904); ok {
			dateCols[i] = d
		}
	}
	if regionCol < 0 {
		return nil, fmt.Errorf("%w %q in sheet %q", ErrMissingColumn, regionColumn, sheet)
	}

	report := &Report{ReportDate: common.Day(reportDate)}
	for _, r := range Regions() {
		row := data[regionRowOffset+int(r)]
		if name := cell(row.cells, regionCol); name != r.String() {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrRegionMismatch, name, r.String())
		}
		deaths := make(map[time.Time]int, len(dateCols))
		for col, d := range dateCols {
			ref, err := excelize.CoordinatesToCellName(col+1, row.num)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, ref)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", ref, err)
			}
			deaths[d] += count(cell(row.cells, col), typ)
		}
		report.Deaths[r] = deaths
	}
	return report, nil
}

func headerDate(s string, date1904 bool) (time.Time, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < minDateSerial || v > maxDateSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(v, date1904)
	if err != nil {
		return time.Time{}, false
	}
	return common.Day(t), true
}

// count reads a numeric cell, truncated. Text, booleans, errors and blanks
// are 0 even when they look like numbers.
func count(s string, typ excelize.CellType) int {
	if typ != excelize.CellTypeNumber && typ != excelize.CellTypeUnset {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
