// Package nhse downloads and parses the NHS England daily announced deaths
// workbooks.
package nhse

import (
	"fmt"
	"strings"
	"time"
)

type Region int

const (
	EastOfEngland Region = iota
	London
	Midlands
	NorthEastAndYorkshire
	NorthWest
	SouthEast
	SouthWest

	NumRegions = 7
)

// England is the national total, published alongside the regions.
const (
	EnglandName       = "England"
	EnglandPopulation = 56.0
)

var regionNames = [NumRegions]string{
	"East Of England",
	"London",
	"Midlands",
	"North East And Yorkshire",
	"North West",
	"South East",
	"South West",
}

// Populations in millions.
var regionPopulations = [NumRegions]float64{6.2, 8.9, 10.7, 8.1, 7.3, 9.1, 5.6}

func (r Region) String() string {
	if r < 0 || r >= NumRegions {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionNames[r]
}

// Population returns r's population in millions.
func (r Region) Population() float64 {
	return regionPopulations[r]
}

// Regions lists every region in workbook row order.
func Regions() []Region {
	rs := make([]Region, NumRegions)
	for i := range rs {
		rs[i] = Region(i)
	}
	return rs
}

// PlotOrder lists the regions roughly north to south, as they are laid out in
// the per-region figure.
var PlotOrder = []Region{NorthWest, NorthEastAndYorkshire, Midlands, EastOfEngland, London, SouthEast, SouthWest}

var monthNames = [...]string{
	"", "Jan", "Feb", "March", "April", "May", "June", "July", "August",
	"September", "October", "November", "December",
}

// DayLabel formats d the way the workbook file names do, e.g. "2-April".
func DayLabel(d time.Time) string {
	return fmt.Sprintf("%d-%s", d.Day(), monthNames[d.Month()])
}

// FileName is the published workbook name for report date d.
func FileName(d time.Time) string {
	return fmt.Sprintf("COVID-19-daily-announced-deaths-%s-%d.xlsx", DayLabel(d), d.Year())
}

// uploadMonthOverrides holds report dates whose workbook was uploaded under a
// later month folder than the report date.
var uploadMonthOverrides = map[string]time.Month{
	"2020-05-28": time.June,
}

// URL is where the workbook for report date d is published under base.
func URL(base string, d time.Time) string {
	month := d.Month()
	if m, ok := uploadMonthOverrides[d.Format("2006-01-02")]; ok {
		month = m
	}
	return fmt.Sprintf("%s/%d/%02d/%s", strings.TrimRight(base, "/"), d.Year(), int(month), FileName(d))
}
